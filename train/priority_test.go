package train

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Priority", func() {
	It("should parse symbolic level names", func() {
		p, err := ParsePriority("ABOVE_NORMAL")

		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(Equal(PriorityAboveNormal))
	})

	It("should reject unknown level names", func() {
		_, err := ParsePriority("URGENT")

		Expect(err).To(MatchError(ErrConfiguration))
	})

	It("should print named levels by name", func() {
		Expect(PriorityNormal.String()).To(Equal("NORMAL"))
		Expect(PriorityVeryLow.String()).To(Equal("VERY_LOW"))
	})

	It("should print unnamed levels by value", func() {
		Expect(Priority(42).String()).To(Equal("42"))
	})
})
