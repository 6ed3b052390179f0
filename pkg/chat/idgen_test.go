package chat_test

import (
	"regexp"

	"github.com/killallgit/scribe/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("IDGenerator", func() {
	var gen *chat.IDGenerator

	BeforeEach(func() {
		gen = chat.NewIDGenerator()
	})

	Describe("Next", func() {
		It("should match the category-millis-counter-suffix format", func() {
			id := gen.Next("system")

			Expect(id).To(MatchRegexp(`^system-\d{13}-\d+-[0-9a-z]{6}$`))
		})

		It("should produce 10000 distinct ids in a tight loop", func() {
			seen := make(map[string]struct{}, 10000)
			for i := 0; i < 10000; i++ {
				id := gen.Next("system")
				_, dup := seen[id]
				Expect(dup).To(BeFalse(), "duplicate id %s at iteration %d", id, i)
				seen[id] = struct{}{}
			}
		})

		It("should keep counters independent per category", func() {
			re := regexp.MustCompile(`^\w+-\d+-(\d+)-`)

			gen.Next("system")
			gen.Next("system")
			mediaID := gen.Next("media")

			Expect(re.FindStringSubmatch(mediaID)[1]).To(Equal("1"))
		})
	})

	Describe("NextDivider", func() {
		It("should omit the random suffix", func() {
			id := gen.NextDivider(chat.DividerStart)

			Expect(id).To(MatchRegexp(`^divider-start-\d{13}-\d+$`))
		})

		It("should count start and end dividers separately", func() {
			gen.NextDivider(chat.DividerStart)
			startID := gen.NextDivider(chat.DividerStart)
			endID := gen.NextDivider(chat.DividerEnd)

			Expect(startID).To(MatchRegexp(`-2$`))
			Expect(endID).To(MatchRegexp(`-1$`))
		})
	})
})
