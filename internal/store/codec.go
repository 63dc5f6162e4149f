// codec.go - msgpack blob encoding for the list-valued company columns
package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/interntrack/backend/internal/models"
)

func encodeTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := msgpack.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	return b, nil
}

func decodeTags(b []byte) ([]string, error) {
	var tags []string
	if err := msgpack.Unmarshal(b, &tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func encodeProjects(projects []models.Project) ([]byte, error) {
	if projects == nil {
		projects = []models.Project{}
	}
	b, err := msgpack.Marshal(projects)
	if err != nil {
		return nil, fmt.Errorf("encoding projects: %w", err)
	}
	return b, nil
}

func decodeProjects(b []byte) ([]models.Project, error) {
	var projects []models.Project
	if err := msgpack.Unmarshal(b, &projects); err != nil {
		return nil, fmt.Errorf("decoding projects: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}
