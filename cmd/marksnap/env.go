package main

import (
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alnah/marksnap"
)

// Converter is what the CLI needs from a conversion backend.
type Converter interface {
	marksnap.Backends
	Close() error
}

// Compile-time interface check.
var _ Converter = (*marksnap.Renderer)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Rand         func() float64
	Stdout       io.Writer
	Stderr       io.Writer
	Getwd        func() (string, error)
	NewConverter func(marksnap.RendererOptions) Converter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Rand:   rand.Float64,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getwd:  os.Getwd,
		NewConverter: func(opts marksnap.RendererOptions) Converter {
			return marksnap.NewRenderer(opts)
		},
	}
}
