package seed

import (
	"bytes"
	_ "embed"
	"fmt"

	"officeHub/internal/models/message"
	"officeHub/internal/models/project"
	"officeHub/internal/models/task"
	"officeHub/internal/models/user"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Dataset - начальные данные всех хранилищ.
type Dataset struct {
	Users    []user.User       `yaml:"users"`
	Projects []project.Project `yaml:"projects"`
	Tasks    []task.Task       `yaml:"tasks"`
	Messages []message.Message `yaml:"messages"`
}

// Default разбирает встроенный набор данных. Каждый вызов возвращает новые слайсы.
func Default() (Dataset, error) {
	return Parse(defaultSeed)
}

func Parse(data []byte) (Dataset, error) {
	var ds Dataset

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("разбор начальных данных: %w", err)
	}
	return ds, nil
}

// Empty - набор без данных, для запуска с пустыми хранилищами.
func Empty() Dataset {
	return Dataset{
		Users:    []user.User{},
		Projects: []project.Project{},
		Tasks:    []task.Task{},
		Messages: []message.Message{},
	}
}
