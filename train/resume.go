package train

import "fmt"

// ResumeOrLoad decides at startup whether to resume from persisted state or
// start fresh. When resume is true and the storage collaborator has a prior
// checkpoint, the latest snapshot is restored and iter and epoch are each
// advanced by one, exactly once: the persisted counters name the last
// completed unit, so the run continues from the next one. Otherwise only
// model weights are loaded from path (when given) and the counters keep
// their construction defaults. Storage errors pass through unmodified.
func (r *Runner) ResumeOrLoad(path string, resume bool) error {
	if r.storage == nil {
		return fmt.Errorf("train: no checkpoint storage configured: %w",
			ErrConfiguration)
	}

	s, resumed, err := r.storage.ResumeOrLoad(path, resume)
	if err != nil {
		return err
	}

	if !resumed {
		return nil
	}

	if err := r.Restore(s); err != nil {
		return err
	}

	r.iter++
	r.epoch++

	r.logger.Printf("train: resumed run at epoch %d, iter %d",
		r.epoch, r.iter)

	return nil
}
