package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/dayline/internal/domain"
)

type fillFile struct {
	Tasks []fillTask `yaml:"tasks"`
}

type fillTask struct {
	Desc     string `yaml:"desc"`
	Min      int    `yaml:"min"`
	Priority *int   `yaml:"priority"`
	Quality  string `yaml:"quality"`
	At       string `yaml:"at"`
	Window   string `yaml:"window"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

func (ft fillTask) toDomain(day string) *domain.Task {
	q, _ := domain.ParseQuality(ft.Quality)
	return &domain.Task{
		Day:          day,
		Description:  ft.Desc,
		EstimatedMin: ft.Min,
		Priority:     ft.Priority,
		Quality:      q,
		ExactTime:    ft.At,
		WindowName:   ft.Window,
		WindowStart:  ft.From,
		WindowEnd:    ft.To,
	}
}

// parseFillFile decodes a fill file strictly. Per-task validation is left
// to the planner, which reports bad tasks as rejections.
func parseFillFile(r io.Reader, day string) ([]*domain.Task, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f fillFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no tasks")
		}
		return nil, err
	}
	if len(f.Tasks) == 0 {
		return nil, fmt.Errorf("no tasks")
	}
	out := make([]*domain.Task, 0, len(f.Tasks))
	for i, ft := range f.Tasks {
		if err := validateOptionalQuality(ft.Quality); err != nil {
			return nil, fmt.Errorf("tasks[%d] quality %q: %w", i, ft.Quality, err)
		}
		out = append(out, ft.toDomain(day))
	}
	return out, nil
}

func loadFillFile(path, day string) ([]*domain.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	tasks, err := parseFillFile(f, day)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return tasks, nil
}
