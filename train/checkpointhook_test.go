package train

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/trainkit/dist"
)

var _ = Describe("PeriodicCheckpoint", func() {
	var (
		mockCtrl *gomock.Controller
		storage  *MockStorage
		step     StepFunc
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		storage = NewMockStorage(mockCtrl)
		step = func(r *Runner, batch any) (map[string]float64, error) {
			return nil, nil
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should save every period epochs with 1-based tags", func() {
		storage.EXPECT().Save("epoch_2", gomock.Any()).Return(nil)
		storage.EXPECT().Save("epoch_4", gomock.Any()).Return(nil)

		r, err := MakeRunnerBuilder().
			WithStep(step).
			WithStorage(storage).
			WithMaxEpochs(4).
			WithCheckpointPolicy(true, 2).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.Run(
			[]DataSource{makeSource(1)},
			[]Phase{{Mode: ModeTrain, Units: 1}})

		Expect(err).ToNot(HaveOccurred())
	})

	It("should save every period iterations with 1-based tags", func() {
		storage.EXPECT().Save("iter_3", gomock.Any()).Return(nil)
		storage.EXPECT().Save("iter_6", gomock.Any()).Return(nil)

		r, err := MakeRunnerBuilder().
			WithRunnerType(IterBased).
			WithStep(step).
			WithStorage(storage).
			WithMaxIters(7).
			WithCheckpointPolicy(false, 3).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.Run(
			[]DataSource{makeSource(4)},
			[]Phase{{Mode: ModeTrain, Units: 1}})

		Expect(err).ToNot(HaveOccurred())
	})

	It("should pass the current snapshot to the storage", func() {
		storage.EXPECT().
			Save("epoch_1", gomock.Any()).
			DoAndReturn(func(tag string, s Snapshot) error {
				Expect(s.Iter).To(Equal(3))
				Expect(s.Epoch).To(Equal(0))
				return nil
			})

		r, err := MakeRunnerBuilder().
			WithStep(step).
			WithStorage(storage).
			WithMaxEpochs(1).
			WithCheckpointPolicy(true, 1).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.Run(
			[]DataSource{makeSource(3)},
			[]Phase{{Mode: ModeTrain, Units: 1}})

		Expect(err).ToNot(HaveOccurred())
	})

	It("should not save after val epochs", func() {
		storage.EXPECT().Save("epoch_1", gomock.Any()).Return(nil)

		r, err := MakeRunnerBuilder().
			WithStep(step).
			WithStorage(storage).
			WithMaxEpochs(1).
			WithCheckpointPolicy(true, 1).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.Run(
			[]DataSource{makeSource(1), makeSource(2)},
			[]Phase{
				{Mode: ModeTrain, Units: 1},
				{Mode: ModeVal, Units: 1},
			})

		Expect(err).ToNot(HaveOccurred())
	})

	It("should stay quiet on ranks other than the main one", func() {
		r, err := MakeRunnerBuilder().
			WithStep(step).
			WithStorage(storage).
			WithDistInfo(dist.Info{Rank: 1, WorldSize: 2}).
			WithMaxEpochs(2).
			WithCheckpointPolicy(true, 1).
			Build()
		Expect(err).ToNot(HaveOccurred())

		err = r.Run(
			[]DataSource{makeSource(1)},
			[]Phase{{Mode: ModeTrain, Units: 1}})

		Expect(err).ToNot(HaveOccurred())
	})

	It("should do nothing with a period of zero", func() {
		h := NewPeriodicCheckpoint(true, 0)

		r, err := MakeRunnerBuilder().
			WithStep(step).
			WithStorage(storage).
			Build()
		Expect(err).ToNot(HaveOccurred())

		Expect(h.AfterEpoch(r)).To(Succeed())
		Expect(h.AfterIter(r)).To(Succeed())
	})
})
