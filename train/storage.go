package train

// Storage is the external checkpoint persistence collaborator.
// Implementations own model-weight handling and byte-level I/O; the core
// only exchanges run snapshots with them. Errors from Storage surface to
// callers unmodified.
type Storage interface {
	// HasCheckpoint reports whether a prior checkpoint marker exists.
	HasCheckpoint() bool

	// Save persists the snapshot under the given tag.
	Save(tag string, s Snapshot) error

	// Load reads back the snapshot stored at path.
	Load(path string) (Snapshot, error)

	// ResumeOrLoad restores the latest checkpoint when resume is true and a
	// checkpoint marker exists, returning its snapshot and resumed=true.
	// Otherwise it loads only model weights from path, when path is
	// non-empty, and returns resumed=false.
	ResumeOrLoad(path string, resume bool) (Snapshot, bool, error)
}
