package chat_test

import (
	"github.com/killallgit/scribe/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Assembler", func() {
	var asm *chat.Assembler

	BeforeEach(func() {
		asm = chat.NewAssembler(chat.NewIDGenerator())
	})

	Describe("OnDelta", func() {
		It("should replace content with each cumulative snapshot", func() {
			asm.OnDelta("s1", "a", chat.RoleAssistant)
			asm.OnDelta("s1", "ab", chat.RoleAssistant)
			asm.OnDelta("s1", "abc", chat.RoleAssistant)

			snap, ok := asm.Snapshot()
			Expect(ok).To(BeTrue())
			Expect(snap.Content).To(Equal("abc"))
		})

		It("should discard the previous buffer when the stream id changes", func() {
			asm.OnDelta("s1", "first reply", chat.RoleAssistant)
			asm.OnDelta("s2", "second", chat.RoleAssistant)

			snap, ok := asm.Snapshot()
			Expect(ok).To(BeTrue())
			Expect(snap.ID).To(Equal("s2"))
			Expect(snap.Content).To(Equal("second"))
		})

		It("should mark the assembler active", func() {
			Expect(asm.Active()).To(BeFalse())
			asm.OnDelta("s1", "a", chat.RoleAssistant)
			Expect(asm.Active()).To(BeTrue())
		})
	})

	Describe("OnComplete", func() {
		It("should finalize using the completion payload, not the buffer", func() {
			asm.OnDelta("s1", "partial conte", chat.RoleAssistant)

			final := asm.OnComplete(chat.Message{ID: "s1", Role: chat.RoleAssistant, Content: "partial content."})

			Expect(final.Content).To(Equal("partial content."))
			Expect(asm.Active()).To(BeFalse())
		})

		It("should finalize a completion that had no prior delta", func() {
			final := asm.OnComplete(chat.Message{Role: chat.RoleAssistant, Content: "one-shot"})

			Expect(final.Content).To(Equal("one-shot"))
			Expect(final.ID).ToNot(BeEmpty())
		})

		It("should mint an id when the payload has none", func() {
			final := asm.OnComplete(chat.Message{Role: chat.RoleAssistant, Content: "x"})

			Expect(final.ID).To(MatchRegexp(`^assistant-\d{13}-\d+-[0-9a-z]{6}$`))
		})

		It("should default the role to assistant", func() {
			final := asm.OnComplete(chat.Message{Content: "x"})

			Expect(final.Role).To(Equal(chat.RoleAssistant))
			Expect(final.Timestamp.IsZero()).To(BeFalse())
		})
	})

	Describe("Clear", func() {
		It("should drop in-flight content without producing an item", func() {
			asm.OnDelta("s1", "in flight", chat.RoleAssistant)
			asm.Clear()

			Expect(asm.Active()).To(BeFalse())
			_, ok := asm.Snapshot()
			Expect(ok).To(BeFalse())
		})
	})
})
