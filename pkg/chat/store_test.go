package chat_test

import (
	"fmt"

	"github.com/killallgit/scribe/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func msgItem(id string) chat.Message {
	return chat.Message{ID: id, Role: chat.RoleUser, Content: id}
}

var _ = Describe("Store", func() {
	Describe("Append", func() {
		It("should preserve insertion order", func() {
			store := chat.NewStore(10)
			store.Append(msgItem("1"))
			store.Append(msgItem("2"))
			store.Append(msgItem("3"))

			items := store.Items()
			Expect(items).To(HaveLen(3))
			Expect(items[0].ItemID()).To(Equal("1"))
			Expect(items[2].ItemID()).To(Equal("3"))
		})

		It("should evict oldest items beyond the cap", func() {
			store := chat.NewStore(3)
			for i := 1; i <= 5; i++ {
				store.Append(msgItem(fmt.Sprintf("%d", i)))
			}

			items := store.Items()
			Expect(items).To(HaveLen(3))
			Expect(items[0].ItemID()).To(Equal("3"))
			Expect(items[1].ItemID()).To(Equal("4"))
			Expect(items[2].ItemID()).To(Equal("5"))
		})
	})

	Describe("ReplaceAll", func() {
		It("should swap contents and keep the most recent within the cap", func() {
			store := chat.NewStore(2)
			store.Append(msgItem("old"))

			store.ReplaceAll([]chat.Item{msgItem("a"), msgItem("b"), msgItem("c")})

			items := store.Items()
			Expect(items).To(HaveLen(2))
			Expect(items[0].ItemID()).To(Equal("b"))
			Expect(items[1].ItemID()).To(Equal("c"))
		})

		It("should not alias the caller's slice", func() {
			store := chat.NewStore(10)
			src := []chat.Item{msgItem("a")}
			store.ReplaceAll(src)
			src[0] = msgItem("mutated")

			Expect(store.Items()[0].ItemID()).To(Equal("a"))
		})
	})

	Describe("SetLimit", func() {
		It("should not trim retroactively", func() {
			store := chat.NewStore(5)
			for i := 1; i <= 5; i++ {
				store.Append(msgItem(fmt.Sprintf("%d", i)))
			}

			store.SetLimit(2)
			Expect(store.Len()).To(Equal(5))

			store.Append(msgItem("6"))
			items := store.Items()
			Expect(items).To(HaveLen(2))
			Expect(items[0].ItemID()).To(Equal("5"))
			Expect(items[1].ItemID()).To(Equal("6"))
		})
	})

	Describe("unbounded mode", func() {
		It("should never evict when the limit is zero or negative", func() {
			store := chat.NewStore(0)
			for i := 0; i < 500; i++ {
				store.Append(msgItem(fmt.Sprintf("%d", i)))
			}

			Expect(store.Len()).To(Equal(500))
		})
	})

	Describe("Last", func() {
		It("should report absence on an empty store", func() {
			store := chat.NewStore(10)

			_, ok := store.Last()
			Expect(ok).To(BeFalse())
		})

		It("should return the newest item", func() {
			store := chat.NewStore(10)
			store.Append(msgItem("1"))
			store.Append(msgItem("2"))

			last, ok := store.Last()
			Expect(ok).To(BeTrue())
			Expect(last.ItemID()).To(Equal("2"))
		})
	})

	Describe("Clear", func() {
		It("should empty the store", func() {
			store := chat.NewStore(10)
			store.Append(msgItem("1"))
			store.Clear()

			Expect(store.Len()).To(Equal(0))
		})
	})
})
