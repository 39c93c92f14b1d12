package train

import (
	"errors"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("ResumeOrLoad", func() {
	var (
		mockCtrl *gomock.Controller
		storage  *MockStorage
		runner   *Runner
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		storage = NewMockStorage(mockCtrl)

		var err error
		runner, err = MakeRunnerBuilder().
			WithStep(func(r *Runner, batch any) (map[string]float64, error) {
				return nil, nil
			}).
			WithStorage(storage).
			WithLogger(log.New(GinkgoWriter, "", 0)).
			Build()
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should advance both counters once after an actual resume", func() {
		storage.EXPECT().
			ResumeOrLoad("", true).
			Return(Snapshot{Iter: 9, Epoch: 2}, true, nil)

		Expect(runner.ResumeOrLoad("", true)).To(Succeed())

		Expect(runner.Iter()).To(Equal(10))
		Expect(runner.Epoch()).To(Equal(3))
	})

	It("should keep the counter defaults on a fresh start", func() {
		storage.EXPECT().
			ResumeOrLoad("weights.json", false).
			Return(Snapshot{}, false, nil)

		Expect(runner.ResumeOrLoad("weights.json", false)).To(Succeed())

		Expect(runner.Iter()).To(Equal(0))
		Expect(runner.Epoch()).To(Equal(0))
	})

	It("should restore hook state during a resume", func() {
		hook := newStatefulHook("BestTracker", nil)
		Expect(runner.RegisterHook(hook, PriorityNormal)).To(Succeed())

		storage.EXPECT().
			ResumeOrLoad("", true).
			Return(Snapshot{
				Iter:  41,
				Epoch: 1,
				Hooks: map[string]map[string]any{
					"BestTracker": {"best_score": 0.98},
				},
			}, true, nil)

		Expect(runner.ResumeOrLoad("", true)).To(Succeed())

		Expect(hook.state).To(HaveKeyWithValue("best_score", 0.98))
		Expect(runner.Iter()).To(Equal(42))
		Expect(runner.Epoch()).To(Equal(2))
	})

	It("should pass storage errors through unmodified", func() {
		storageErr := errors.New("bucket unreachable")
		storage.EXPECT().
			ResumeOrLoad("", true).
			Return(Snapshot{}, false, storageErr)

		err := runner.ResumeOrLoad("", true)

		Expect(err).To(BeIdenticalTo(storageErr))
	})

	It("should propagate restore failures", func() {
		hook := newStatefulHook("Broken", nil)
		hook.importErr = errors.New("corrupt blob")
		Expect(runner.RegisterHook(hook, PriorityNormal)).To(Succeed())

		storage.EXPECT().
			ResumeOrLoad("", true).
			Return(Snapshot{
				Hooks: map[string]map[string]any{"Broken": {"x": 1}},
			}, true, nil)

		err := runner.ResumeOrLoad("", true)

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("corrupt blob"))
	})

	It("should refuse to resume without storage", func() {
		bare, err := MakeRunnerBuilder().
			WithStep(func(r *Runner, batch any) (map[string]float64, error) {
				return nil, nil
			}).
			Build()
		Expect(err).ToNot(HaveOccurred())

		Expect(bare.ResumeOrLoad("", true)).To(MatchError(ErrConfiguration))
	})
})
