package app

import (
	"testing"

	"vtt-release/internal/model"
)

func TestOptionsFromFlags(t *testing.T) {
	t.Run("rejects mixing tags and commits", func(t *testing.T) {
		_, err := OptionsFromFlags(FlagValues{
			FromTag:    "v1.0.0",
			FromCommit: "abc123",
		})
		if err == nil {
			t.Fatalf("expected error when mixing tag and commit flags")
		}
	})

	t.Run("no refs means latest tag", func(t *testing.T) {
		opts, err := OptionsFromFlags(FlagValues{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Explicit() {
			t.Fatalf("expected an implicit range, got %+v", opts)
		}
	})

	t.Run("defaults missing toRef to HEAD for tags", func(t *testing.T) {
		opts, err := OptionsFromFlags(FlagValues{
			FromTag: "v1.0.0",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.ToTag != "HEAD" {
			t.Fatalf("expected ToTag to default to HEAD, got %q", opts.ToTag)
		}
		if opts.Range() != (model.Range{From: "v1.0.0", To: "HEAD"}) {
			t.Fatalf("unexpected range %+v", opts.Range())
		}
	})

	t.Run("defaults missing toRef to HEAD for commits", func(t *testing.T) {
		opts, err := OptionsFromFlags(FlagValues{
			FromCommit: "abc123",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.ToCommit != "HEAD" {
			t.Fatalf("expected ToCommit to default to HEAD, got %q", opts.ToCommit)
		}
		if opts.Range() != (model.Range{From: "abc123", To: "HEAD"}) {
			t.Fatalf("unexpected range %+v", opts.Range())
		}
	})

	t.Run("requires fromRef when toRef is given", func(t *testing.T) {
		_, err := OptionsFromFlags(FlagValues{ToTag: "v1.0.1"})
		if err == nil {
			t.Fatalf("expected error when toRef is provided without fromRef")
		}
	})

	t.Run("keeps stdout marker and cleans output path", func(t *testing.T) {
		opts, err := OptionsFromFlags(FlagValues{OutputPath: "-"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.OutputPath != "-" {
			t.Fatalf("unexpected output path %q", opts.OutputPath)
		}

		opts, err = OptionsFromFlags(FlagValues{OutputPath: "./out/../NOTES.md"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.OutputPath != "NOTES.md" {
			t.Fatalf("unexpected output path %q", opts.OutputPath)
		}
	})
}
