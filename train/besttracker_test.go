package train

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BestTracker", func() {
	runWithLosses := func(tracker *BestTracker, losses []float64) {
		i := 0
		step := func(r *Runner, batch any) (map[string]float64, error) {
			loss := losses[i]
			i++
			return map[string]float64{"loss": loss}, nil
		}

		r, err := MakeRunnerBuilder().
			WithRunnerType(IterBased).
			WithStep(step).
			WithMaxIters(len(losses)).
			Build()
		Expect(err).ToNot(HaveOccurred())
		Expect(r.RegisterHook(tracker, PriorityNormal)).To(Succeed())

		err = r.Run(
			[]DataSource{makeSource(len(losses))},
			[]Phase{{Mode: ModeTrain, Units: 1}})
		Expect(err).ToNot(HaveOccurred())
	}

	It("should track the smallest value when smaller is better", func() {
		tracker := NewBestTracker("loss", false)

		runWithLosses(tracker, []float64{5, 3, 4, 1})

		best, iter, seen := tracker.Best()
		Expect(seen).To(BeTrue())
		Expect(best).To(Equal(1.0))
		Expect(iter).To(Equal(3))
	})

	It("should track the largest value when larger is better", func() {
		tracker := NewBestTracker("loss", true)

		runWithLosses(tracker, []float64{0.1, 0.9, 0.5})

		best, iter, seen := tracker.Best()
		Expect(seen).To(BeTrue())
		Expect(best).To(Equal(0.9))
		Expect(iter).To(Equal(1))
	})

	It("should stay unseen while the metric never appears", func() {
		tracker := NewBestTracker("accuracy", true)

		runWithLosses(tracker, []float64{5, 3})

		_, _, seen := tracker.Best()
		Expect(seen).To(BeFalse())
		Expect(tracker.ExportState()).To(BeNil())
	})

	It("should export the record for snapshots", func() {
		tracker := NewBestTracker("loss", false)

		runWithLosses(tracker, []float64{5, 3})

		Expect(tracker.ExportState()).To(Equal(map[string]any{
			"best_score": 3.0,
			"best_iter":  1,
		}))
	})

	It("should accept decoded snapshot numbers", func() {
		tracker := NewBestTracker("loss", false)

		err := tracker.ImportState(map[string]any{
			"best_score": 0.98,
			"best_iter":  float64(42),
		})

		Expect(err).ToNot(HaveOccurred())

		best, iter, seen := tracker.Best()
		Expect(seen).To(BeTrue())
		Expect(best).To(Equal(0.98))
		Expect(iter).To(Equal(42))
	})

	It("should reject state without the record fields", func() {
		tracker := NewBestTracker("loss", false)

		Expect(tracker.ImportState(map[string]any{})).To(HaveOccurred())
		Expect(tracker.ImportState(map[string]any{
			"best_score": 0.5,
		})).To(HaveOccurred())
	})

	It("should not regress the record after an import", func() {
		tracker := NewBestTracker("loss", false)

		Expect(tracker.ImportState(map[string]any{
			"best_score": 1.0,
			"best_iter":  7,
		})).To(Succeed())

		runWithLosses(tracker, []float64{5, 3})

		best, iter, _ := tracker.Best()
		Expect(best).To(Equal(1.0))
		Expect(iter).To(Equal(7))
	})
})
