package peloapi

import (
	"encoding/json"
	"fmt"
	"os"
)

// Instructor is read-only reference data mapping the platform's opaque
// instructor ids to display metadata.
type Instructor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// LoadInstructors reads the instructor reference file into a lookup by
// instructor id.
func LoadInstructors(path string) (map[string]Instructor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instructors file: %w", err)
	}

	var instructors []Instructor
	if err := json.Unmarshal(data, &instructors); err != nil {
		return nil, fmt.Errorf("unmarshal instructors file: %w", err)
	}

	byID := make(map[string]Instructor, len(instructors))
	for _, instructor := range instructors {
		byID[instructor.ID] = instructor
	}
	return byID, nil
}
