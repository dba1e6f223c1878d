package transport_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nbelhadj/maintenance-management/internal/transport"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Suite")
}

var _ = Describe("ParseSessionHeader", func() {
	It("parses a well-formed session header", func() {
		id, ok := transport.ParseSessionHeader("Session 42")
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(int64(42)))
	})

	DescribeTable("rejects malformed headers",
		func(header string) {
			_, ok := transport.ParseSessionHeader(header)
			Expect(ok).To(BeFalse())
		},
		Entry("empty", ""),
		Entry("wrong scheme", "Bearer 42"),
		Entry("lowercase scheme", "session 42"),
		Entry("non-integer id", "Session forty-two"),
		Entry("zero id", "Session 0"),
		Entry("negative id", "Session -3"),
		Entry("missing id", "Session "),
	)
})
