package gamedata

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/bandbattle/internal/telemetry"
)

// Load reads and unmarshals a YAML data file.
func Load[T any](filename string) (T, error) {
	return LoadContext[T](context.Background(), filename)
}

// LoadContext is Load with a parent context for the gamedata.load span.
func LoadContext[T any](ctx context.Context, filename string) (T, error) {
	var zero T

	tracer := telemetry.Tracer("gamedata")
	_, span := tracer.Start(ctx, "gamedata.load")
	defer span.End()
	span.SetAttributes(attribute.String("file", filename))

	content, err := ReadFile(filename)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return zero, fmt.Errorf("gamedata: load %s: %w", filename, err)
	}
	span.SetAttributes(attribute.Int("bytes", len(content)))

	var result T
	if err := yaml.Unmarshal(content, &result); err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return zero, fmt.Errorf("gamedata: unmarshal %s: %w", filename, err)
	}
	return result, nil
}

// MustLoad reads and unmarshals a data file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
