package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

// outputFlags are the machine-readable output switches shared by read
// commands.
type outputFlags struct {
	json bool
	yaml bool
}

func (o outputFlags) structured() bool { return o.json || o.yaml }

// write emits v as JSON or YAML. It reports false when neither is set.
func (o outputFlags) write(w io.Writer, v interface{}) (bool, error) {
	switch {
	case o.json:
		return true, outputJSON(w, v)
	case o.yaml:
		return true, outputYAML(w, v)
	}
	return false, nil
}

func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(v)
}

// courseOf returns the course the command runs against.
func courseOf(s *service.Service) (models.ID, error) {
	course := s.DefaultCourse()
	if course.IsZero() {
		return course, fmt.Errorf("%w: pass --course or set course in the config", service.ErrNoCourse)
	}
	return course, nil
}
