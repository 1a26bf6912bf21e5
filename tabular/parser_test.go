package tabular_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/disk-reconciler/tabular"
)

var _ = Describe("Parse", func() {
	It("returns one record per data row, keyed by header title", func() {
		records := tabular.Parse([]string{
			"Name    Age  City",
			"alice   30   sydney",
			"bob     9    melbourne",
		})

		Expect(records).To(HaveLen(2))
		Expect(records[0]).To(Equal(tabular.Record{"Name": "alice", "Age": "30", "City": "sydney"}))
		Expect(records[1]).To(Equal(tabular.Record{"Name": "bob", "Age": "9", "City": "melbourne"}))
	})

	It("preserves input row order", func() {
		records := tabular.Parse([]string{
			"Id",
			"3",
			"1",
			"2",
		})

		Expect(records).To(HaveLen(3))
		Expect(records[0]["Id"]).To(Equal("3"))
		Expect(records[1]["Id"]).To(Equal("1"))
		Expect(records[2]["Id"]).To(Equal("2"))
	})

	It("trims surrounding whitespace from every field", func() {
		records := tabular.Parse([]string{
			"Number  Start   End     Size    File system  Name     Flags",
			" 1      1049kB  106MB   105MB   fat32        primary  boot",
		})

		Expect(records).To(HaveLen(1))
		Expect(records[0]["Number"]).To(Equal("1"))
		Expect(records[0]["Start"]).To(Equal("1049kB"))
		Expect(records[0]["End"]).To(Equal("106MB"))
		Expect(records[0]["Flags"]).To(Equal("boot"))
	})

	It("extends the last column to the full line length", func() {
		records := tabular.Parse([]string{
			"Key  Value",
			"a    value that runs past the header width",
		})

		Expect(records[0]["Value"]).To(Equal("value that runs past the header width"))
	})

	It("returns empty fields for rows shorter than the header", func() {
		records := tabular.Parse([]string{
			"Number  Start   End",
			" 2",
		})

		Expect(records).To(HaveLen(1))
		Expect(records[0]["Number"]).To(Equal("2"))
		Expect(records[0]["Start"]).To(Equal(""))
		Expect(records[0]["End"]).To(Equal(""))
	})

	It("skips blank data rows", func() {
		records := tabular.Parse([]string{
			"Id  Name",
			"1   a",
			"   ",
			"2   b",
		})

		Expect(records).To(HaveLen(2))
	})

	It("returns no records for empty input", func() {
		Expect(tabular.Parse([]string{})).To(BeEmpty())
	})

	It("returns no records for a header-only table", func() {
		Expect(tabular.Parse([]string{"Number  Start  End"})).To(BeEmpty())
	})
})
