package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sarchlab/trainkit/train"
)

// markerFile names the latest checkpoint within a checkpoint directory.
const markerFile = "last_checkpoint"

// Checkpointer stores checkpoints as JSON files in one directory. The
// marker file tracks the latest save, so a restarted process can resume
// without knowing the tag it stopped at. Checkpointer implements
// train.Storage.
type Checkpointer struct {
	dir   string
	model train.Stateful
	codec Codec
}

// NewCheckpointer creates a checkpointer writing into dir. model carries the
// weights section of each payload and may be nil for runs whose model keeps
// its own persistence.
func NewCheckpointer(dir string, model train.Stateful) *Checkpointer {
	return &Checkpointer{
		dir:   dir,
		model: model,
		codec: JSONCodec{},
	}
}

// Dir returns the checkpoint directory.
func (c *Checkpointer) Dir() string {
	return c.dir
}

// HasCheckpoint reports whether the marker file exists.
func (c *Checkpointer) HasCheckpoint() bool {
	_, err := os.Stat(filepath.Join(c.dir, markerFile))

	return err == nil
}

// LastCheckpoint returns the path of the latest saved checkpoint.
func (c *Checkpointer) LastCheckpoint() (string, error) {
	raw, err := os.ReadFile(filepath.Join(c.dir, markerFile))
	if err != nil {
		return "", fmt.Errorf("checkpoint: reading marker: %w", err)
	}

	name := strings.TrimSpace(string(raw))
	if name == "" {
		return "", fmt.Errorf("checkpoint: marker file is empty")
	}

	return filepath.Join(c.dir, name), nil
}

// Save writes the snapshot, together with the model weights when available,
// under <dir>/<tag>.json and points the marker at it.
func (c *Checkpointer) Save(tag string, s train.Snapshot) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("checkpoint: creating %s: %w", c.dir, err)
	}

	p := Payload{
		Tag:    tag,
		Time:   time.Now(),
		Runner: s,
	}

	if c.model != nil {
		p.Model = c.model.ExportState()
	}

	name := tag + ".json"

	f, err := os.Create(filepath.Join(c.dir, name))
	if err != nil {
		return fmt.Errorf("checkpoint: creating %s: %w", name, err)
	}
	defer f.Close()

	if err := c.codec.Encode(f, p); err != nil {
		return fmt.Errorf("checkpoint: writing %s: %w", name, err)
	}

	marker := filepath.Join(c.dir, markerFile)
	if err := os.WriteFile(marker, []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("checkpoint: updating marker: %w", err)
	}

	return nil
}

// Load reads the payload at path, feeds the weights section back to the
// model, and returns the run snapshot.
func (c *Checkpointer) Load(path string) (train.Snapshot, error) {
	p, err := c.read(path)
	if err != nil {
		return train.Snapshot{}, err
	}

	if err := c.applyWeights(p); err != nil {
		return train.Snapshot{}, err
	}

	return p.Runner, nil
}

// ResumeOrLoad implements the resume decision of train.Storage. With resume
// requested and a marker present, it loads the latest checkpoint in full.
// Otherwise it applies only the weights section of the payload at path, when
// path is given, and reports a fresh start.
func (c *Checkpointer) ResumeOrLoad(
	path string,
	resume bool,
) (train.Snapshot, bool, error) {
	if resume && c.HasCheckpoint() {
		last, err := c.LastCheckpoint()
		if err != nil {
			return train.Snapshot{}, false, err
		}

		s, err := c.Load(last)
		if err != nil {
			return train.Snapshot{}, false, err
		}

		return s, true, nil
	}

	if path == "" {
		return train.Snapshot{}, false, nil
	}

	p, err := c.read(path)
	if err != nil {
		return train.Snapshot{}, false, err
	}

	if err := c.applyWeights(p); err != nil {
		return train.Snapshot{}, false, err
	}

	return train.Snapshot{}, false, nil
}

// Read returns the raw payload at path without touching the model. The CLI
// uses it to inspect checkpoints offline.
func (c *Checkpointer) Read(path string) (Payload, error) {
	return c.read(path)
}

func (c *Checkpointer) read(path string) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return Payload{}, fmt.Errorf("checkpoint: opening %s: %w", path, err)
	}
	defer f.Close()

	p, err := c.codec.Decode(f)
	if err != nil {
		return Payload{}, fmt.Errorf("checkpoint: decoding %s: %w", path, err)
	}

	return p, nil
}

func (c *Checkpointer) applyWeights(p Payload) error {
	if c.model == nil || p.Model == nil {
		return nil
	}

	if err := c.model.ImportState(p.Model); err != nil {
		return fmt.Errorf("checkpoint: model weights: %w", err)
	}

	return nil
}
