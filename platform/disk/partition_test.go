package disk_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/cloudfoundry/disk-reconciler/platform/disk"
	"github.com/cloudfoundry/disk-reconciler/tabular"
)

var _ = Describe("Partition", func() {
	Describe("NewPartition", func() {
		It("normalizes fields that carry unit suffixes", func() {
			partition, err := NewPartition(tabular.Record{"Number": "2", "Start": "500MB", "End": "750MB"}, 1000)
			Expect(err).ToNot(HaveOccurred())
			Expect(partition.Number).To(Equal(2))
			Expect(partition.Start).To(Equal(Offset(500)))
			Expect(partition.End).To(Equal(Offset(750)))
			Expect(partition.MaxSize).To(Equal(Offset(1000)))
		})

		It("resolves a negative end to the device size", func() {
			partition, err := NewPartition(tabular.Record{"Number": "1", "Start": "0", "End": "-1"}, 1000)
			Expect(err).ToNot(HaveOccurred())
			Expect(partition.End).To(Equal(Offset(1000)))
		})

		It("returns an error for an unparseable partition number", func() {
			_, err := NewPartition(tabular.Record{"Number": "", "Start": "0", "End": "10"}, 1000)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Parsing partition number"))
		})

		It("returns an error for unparseable offsets", func() {
			_, err := NewPartition(tabular.Record{"Number": "1", "Start": "free", "End": "10"}, 1000)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Parsing start of partition 1"))

			_, err = NewPartition(tabular.Record{"Number": "1", "Start": "0", "End": "free"}, 1000)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Parsing end of partition 1"))
		})
	})

	Describe("Same", func() {
		partition := Partition{Number: 1, Start: 100, End: 500, MaxSize: 1000}

		It("is reflexive against the partition's own fields", func() {
			Expect(partition.Same(partition.Start, partition.End)).To(BeTrue())
		})

		It("tolerates drift below 2 decimal places", func() {
			Expect(partition.Same(100.004, 499.996)).To(BeTrue())
			Expect(partition.Same(100.01, 500)).To(BeFalse())
		})

		It("requires both start and end to match", func() {
			Expect(partition.Same(100, 400)).To(BeFalse())
			Expect(partition.Same(200, 500)).To(BeFalse())
		})

		It("treats a negative end like the device size", func() {
			full := Partition{Number: 1, Start: 0, End: 1000, MaxSize: 1000}
			Expect(full.Same(0, -1)).To(BeTrue())
			Expect(full.Same(0, 1000)).To(BeTrue())
			Expect(partition.Same(100, -1)).To(BeFalse())
		})
	})

	Describe("Overlaps", func() {
		partition := Partition{Number: 1, Start: 0, End: 100, MaxSize: 1000}

		It("detects overlapping ranges", func() {
			Expect(partition.Overlaps(50, 150)).To(BeTrue())
			Expect(partition.Overlaps(0, 50)).To(BeTrue())
		})

		It("detects ranges containing or contained by the partition", func() {
			Expect(partition.Overlaps(25, 75)).To(BeTrue())
			Expect(partition.Overlaps(0, 1000)).To(BeTrue())
		})

		It("rejects disjoint ranges", func() {
			Expect(partition.Overlaps(150, 200)).To(BeFalse())
		})

		It("treats adjacency as non-overlapping", func() {
			Expect(partition.Overlaps(100, 200)).To(BeFalse())

			later := Partition{Number: 2, Start: 100, End: 200, MaxSize: 1000}
			Expect(later.Overlaps(0, 100)).To(BeFalse())
		})

		It("is symmetric under swapping candidate and existing", func() {
			other := Partition{Number: 2, Start: 50, End: 150, MaxSize: 1000}
			Expect(partition.Overlaps(other.Start, other.End)).To(Equal(other.Overlaps(partition.Start, partition.End)))

			disjoint := Partition{Number: 3, Start: 150, End: 200, MaxSize: 1000}
			Expect(partition.Overlaps(disjoint.Start, disjoint.End)).To(Equal(disjoint.Overlaps(partition.Start, partition.End)))

			adjacent := Partition{Number: 4, Start: 100, End: 200, MaxSize: 1000}
			Expect(partition.Overlaps(adjacent.Start, adjacent.End)).To(Equal(adjacent.Overlaps(partition.Start, partition.End)))
		})

		It("treats a negative end like the device size", func() {
			Expect(partition.Overlaps(50, -1)).To(Equal(partition.Overlaps(50, 1000)))
			Expect(partition.Overlaps(100, -1)).To(Equal(partition.Overlaps(100, 1000)))
			Expect(partition.Overlaps(200, -1)).To(Equal(partition.Overlaps(200, 1000)))
		})
	})
})
