package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dethan3/tickeye/model"
)

//go:embed alias.yaml
var aliasData []byte

// AliasTable 指数代码别名表，运行期间只读
type AliasTable struct {
	China  map[string]model.Alias `yaml:"china"`
	Global map[string]model.Alias `yaml:"global"`
}

// LoadAlias 加载别名表。path 为空时使用内置表；
// path 非空但文件不存在同样回退内置表
func LoadAlias(path string) (*AliasTable, error) {
	data := aliasData
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			data = b
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("读取别名表失败 %s: %w", path, err)
		}
	}

	var table AliasTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("解析别名表失败: %w", err)
	}
	if table.China == nil {
		table.China = make(map[string]model.Alias)
	}
	if table.Global == nil {
		table.Global = make(map[string]model.Alias)
	}
	return &table, nil
}
