package train

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Hook factory", func() {
	It("should build the built-in hooks from descriptors", func() {
		h, err := BuildHook(HookConfig{
			Type:   "PeriodicCheckpoint",
			Params: map[string]any{"by_epoch": false, "period": 3},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(h.Kind()).To(Equal("PeriodicCheckpoint"))
	})

	It("should accept numeric params decoded as float64", func() {
		h, err := BuildHook(HookConfig{
			Type:   "PeriodicCheckpoint",
			Params: map[string]any{"period": float64(5)},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(h.(*PeriodicCheckpoint).period).To(Equal(5))
	})

	It("should reject an unknown hook type", func() {
		_, err := BuildHook(HookConfig{Type: "Nonexistent"})

		Expect(err).To(MatchError(ErrConfiguration))
	})

	It("should require a metric for the best tracker", func() {
		_, err := BuildHook(HookConfig{Type: "BestTracker"})

		Expect(err).To(MatchError(ErrConfiguration))
	})

	It("should register a described hook at the named level", func() {
		r, err := MakeRunnerBuilder().
			WithStep(func(r *Runner, batch any) (map[string]float64, error) {
				return nil, nil
			}).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.RegisterHookFromConfig(HookConfig{
			Type:     "IterTimer",
			Priority: "VERY_HIGH",
		})

		Expect(err).ToNot(HaveOccurred())

		hooks := r.Hooks()
		Expect(hooks).To(HaveLen(1))
		Expect(hooks[0].Priority()).To(Equal(PriorityVeryHigh))
	})

	It("should default a described hook to NORMAL", func() {
		r, err := MakeRunnerBuilder().
			WithStep(func(r *Runner, batch any) (map[string]float64, error) {
				return nil, nil
			}).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.RegisterHookFromConfig(HookConfig{Type: "IterTimer"})

		Expect(err).ToNot(HaveOccurred())
		Expect(r.Hooks()[0].Priority()).To(Equal(PriorityNormal))
	})

	It("should reject a bad priority name in a descriptor", func() {
		r, err := MakeRunnerBuilder().
			WithStep(func(r *Runner, batch any) (map[string]float64, error) {
				return nil, nil
			}).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.RegisterHookFromConfig(HookConfig{
			Type:     "IterTimer",
			Priority: "SOMETIMES",
		})

		Expect(err).To(MatchError(ErrConfiguration))
		Expect(r.Hooks()).To(BeEmpty())
	})

	It("should panic when a hook type name is taken", func() {
		Expect(func() {
			RegisterHookType("IterTimer",
				func(map[string]any) (Hook, error) {
					return NewIterTimer(), nil
				})
		}).To(Panic())
	})
})
