// Package dist resolves the process-group coordinates of a distributed
// training run. Coordinates are read once at startup and passed by value;
// nothing in this package is queried ambiently afterward.
package dist

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Info carries the coordinates of one member of a training process group.
type Info struct {
	Rank      int
	WorldSize int
}

// Single returns the coordinates of a run without a process group.
func Single() Info {
	return Info{Rank: 0, WorldSize: 1}
}

// IsMain reports whether this member is the designated checkpoint writer.
func (i Info) IsMain() bool {
	return i.Rank == 0
}

// FromEnv resolves Info from the RANK and WORLD_SIZE environment variables,
// loading a .env file from the working directory first when one exists.
// Unset variables resolve to a single-process run.
func FromEnv() (Info, error) {
	_ = godotenv.Load()

	info := Single()

	var err error

	if v := os.Getenv("RANK"); v != "" {
		info.Rank, err = strconv.Atoi(v)
		if err != nil {
			return Info{}, fmt.Errorf("dist: RANK %q: %w", v, err)
		}
	}

	if v := os.Getenv("WORLD_SIZE"); v != "" {
		info.WorldSize, err = strconv.Atoi(v)
		if err != nil {
			return Info{}, fmt.Errorf("dist: WORLD_SIZE %q: %w", v, err)
		}
	}

	if info.WorldSize < 1 {
		return Info{}, fmt.Errorf("dist: world size %d is not positive",
			info.WorldSize)
	}

	if info.Rank < 0 || info.Rank >= info.WorldSize {
		return Info{}, fmt.Errorf(
			"dist: rank %d does not fit a process group of %d",
			info.Rank, info.WorldSize)
	}

	return info, nil
}
