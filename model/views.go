package model

import "sync"

type ViewID string

var (
	viewRegistry   []ViewID
	viewRegistryMu sync.Mutex
)

func DefineView(name string) ViewID {
	viewRegistryMu.Lock()
	defer viewRegistryMu.Unlock()

	id := ViewID(name)
	viewRegistry = append(viewRegistry, id)
	return id
}

func AllViews() []ViewID {
	viewRegistryMu.Lock()
	defer viewRegistryMu.Unlock()

	result := make([]ViewID, len(viewRegistry))
	copy(result, viewRegistry)
	return result
}

// --- 定义视图 ---

var (
	// ViewLatest 每个标的最近一次成功获取的记录
	ViewLatest = DefineView("v_latest")
	// ViewSourceHealth 各数据源成功/失败次数统计，用于排查数据源稳定性
	ViewSourceHealth = DefineView("v_source_health")
)
