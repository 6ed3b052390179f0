package chat_test

import (
	"github.com/killallgit/scribe/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Projections", func() {
	var items []chat.Item

	BeforeEach(func() {
		items = []chat.Item{
			chat.Message{ID: "m1", Role: chat.RoleUser, Content: "question"},
			chat.Divider{ID: "d1", DividerType: chat.DividerStart},
			chat.Message{ID: "m2", Role: chat.RoleAssistant, Content: "answer"},
			chat.SystemAlert{ID: "a1", Severity: chat.SeverityInfo},
			chat.Message{ID: "m3", Role: chat.RoleUser, Content: "followup"},
		}
	})

	Describe("LastMessage", func() {
		It("should skip non-message items", func() {
			trailing := append(items, chat.SystemAlert{ID: "a2"})

			last, ok := chat.LastMessage(trailing)
			Expect(ok).To(BeTrue())
			Expect(last.ID).To(Equal("m3"))
		})

		It("should report absence when no messages exist", func() {
			_, ok := chat.LastMessage([]chat.Item{chat.Divider{ID: "d1"}})
			Expect(ok).To(BeFalse())
		})
	})

	Describe("MessagesByRole", func() {
		It("should filter by role preserving order", func() {
			users := chat.MessagesByRole(items, chat.RoleUser)

			Expect(users).To(HaveLen(2))
			Expect(users[0].ID).To(Equal("m1"))
			Expect(users[1].ID).To(Equal("m3"))
		})

		It("should return nil for an unused role", func() {
			Expect(chat.MessagesByRole(items, chat.RoleThought)).To(BeEmpty())
		})
	})

	Describe("Messages", func() {
		It("should project only conversational turns", func() {
			msgs := chat.Messages(items)

			Expect(msgs).To(HaveLen(3))
		})
	})
})
