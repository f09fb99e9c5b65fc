package trail_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractor/internal/trail"
)

func point(i int) trail.Vec3 { return trail.Vec3{float64(i), float64(-i), float64(2 * i)} }

var _ = Describe("Buffer", func() {
	const capacity = 16

	var buf *trail.Buffer

	BeforeEach(func() {
		buf = trail.New(capacity)
	})

	Describe("construction", func() {
		It("starts empty", func() {
			start, length := buf.ActiveRange()
			Expect(start).To(Equal(0))
			Expect(length).To(Equal(0))
			Expect(buf.Cap()).To(Equal(capacity))
			Expect(buf.Head()).To(Equal(0))
			_, ok := buf.Latest()
			Expect(ok).To(BeFalse())
		})

		It("allocates backing arrays at full capacity", func() {
			Expect(buf.Positions()).To(HaveLen(capacity))
			Expect(buf.Colors()).To(HaveLen(capacity))
		})

		It("panics on a zero capacity", func() {
			Expect(func() { trail.New(0) }).To(Panic())
		})
	})

	Describe("filling", func() {
		It("returns N < C records in insertion order from index 0", func() {
			const n = 5
			for i := 1; i <= n; i++ {
				buf.Push(point(i), float64(i))
			}

			start, length := buf.ActiveRange()
			Expect(start).To(Equal(0))
			Expect(length).To(Equal(n))
			for i := 0; i < n; i++ {
				pos, col := buf.At(i)
				Expect(pos).To(Equal(point(i + 1)))
				Expect(col).To(Equal(trail.ColorOf(float64(i + 1))))
			}
			Expect(buf.Head()).To(Equal(n))
		})

		It("saturates at capacity", func() {
			for i := 1; i <= capacity; i++ {
				buf.Push(point(i), 0)
			}
			Expect(buf.Len()).To(Equal(capacity))
			Expect(buf.Saturated()).To(BeTrue())
			Expect(buf.Head()).To(Equal(0))
		})
	})

	Describe("wrapping", func() {
		BeforeEach(func() {
			for i := 1; i <= capacity+1; i++ {
				buf.Push(point(i), float64(i))
			}
		})

		It("keeps filled count at capacity", func() {
			_, length := buf.ActiveRange()
			Expect(length).To(Equal(capacity))
		})

		It("overwrites slot 0 with the (C+1)-th record", func() {
			pos, col := buf.At(0)
			Expect(pos).To(Equal(point(capacity + 1)))
			Expect(col).To(Equal(trail.ColorOf(float64(capacity + 1))))
			Expect(buf.Head()).To(Equal(1))
		})

		It("reports the newest point as latest", func() {
			latest, ok := buf.Latest()
			Expect(ok).To(BeTrue())
			Expect(latest).To(Equal(point(capacity + 1)))
		})

		It("unrolls the ring oldest first", func() {
			pos, col := buf.Ordered()
			Expect(pos).To(HaveLen(capacity))
			Expect(col).To(HaveLen(capacity))
			Expect(pos[0]).To(Equal(point(2)))
			Expect(pos[capacity-1]).To(Equal(point(capacity + 1)))
		})
	})

	It("never reports more than capacity active points", func() {
		for i := 0; i < 5*capacity+3; i++ {
			buf.Push(point(i), 0)
			_, length := buf.ActiveRange()
			Expect(length).To(BeNumerically("<=", capacity))
			Expect(length).To(Equal(min(i+1, capacity)))
			Expect(buf.Head()).To(Equal((i + 1) % capacity))
		}
	})

	Describe("PushState", func() {
		It("scales positions and keys color on raw z", func() {
			scaled := trail.New(4, trail.WithScale(0.3))
			scaled.PushState(10, -20, 40)

			pos, col := scaled.At(0)
			Expect(pos[0]).To(BeNumerically("~", 3, 1e-12))
			Expect(pos[1]).To(BeNumerically("~", -6, 1e-12))
			Expect(pos[2]).To(BeNumerically("~", 12, 1e-12))
			Expect(col).To(Equal(trail.ColorOf(40)))
		})

		It("honours a custom color map", func() {
			m := trail.ColorMap{MinZ: 0, MaxZ: 10, HueStart: 0, HueEnd: 0.5, Saturation: 1, Lightness: 0.5}
			custom := trail.New(2, trail.WithColorMap(m))
			custom.PushState(0, 0, 10)
			_, col := custom.At(0)
			Expect(col).To(Equal(m.At(10)))
		})
	})

	It("resets to empty without reallocating", func() {
		backing := buf.Positions()
		for i := 0; i < capacity+3; i++ {
			buf.Push(point(i), 0)
		}
		buf.Reset()

		Expect(buf.Len()).To(Equal(0))
		Expect(buf.Head()).To(Equal(0))
		Expect(&buf.Positions()[0]).To(BeIdenticalTo(&backing[0]))
		pos, _ := buf.Ordered()
		Expect(pos).To(BeEmpty())
	})
})
