package frame

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/util/json"
)

func TestFrame(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Frame")
}

var _ = Describe("Vec", func() {
	It("should partition values into chunks", func() {
		v, err := NewVec([]float64{1, 2, 3, 4, 5}, nil, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Len()).To(Equal(int64(5)))
		Expect(v.NChunks()).To(Equal(3))
		Expect(v.Layout()).To(Equal([]int64{0, 2, 4, 5}))
		Expect(v.Chunk(1).Start).To(Equal(int64(2)))
		Expect(v.Chunk(1).At(1)).To(Equal(4.0))
		Expect(v.At(4)).To(Equal(5.0))
		Expect(v.Values()).To(Equal([]float64{1, 2, 3, 4, 5}))
	})

	It("should compute the max rollup ignoring NAs", func() {
		v, err := NewVec([]float64{1, NA, 7, 3}, nil, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Max()).To(Equal(7.0))

		v, err = NewVec([]float64{NA, NA}, nil, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(v.Max())).To(BeTrue())
	})

	It("should not alias the caller's slice", func() {
		data := []float64{1, 2}
		v, err := NewVec(data, nil, 4)
		Expect(err).NotTo(HaveOccurred())
		data[0] = 100
		Expect(v.At(0)).To(Equal(1.0))
	})

	It("should validate categorical codes", func() {
		_, err := NewVec([]float64{0, 1, 2}, []string{"a", "b"}, 4)
		Expect(err).To(HaveOccurred())

		_, err = NewVec([]float64{0, 0.5}, []string{"a", "b"}, 4)
		Expect(err).To(HaveOccurred())

		_, err = NewVec([]float64{0, 1}, []string{"a", "a"}, 4)
		Expect(err).To(HaveOccurred())

		v, err := NewVec([]float64{0, NA, 1}, []string{"a", "b"}, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.IsCategorical()).To(BeTrue())
		l, ok := v.Label(2)
		Expect(ok).To(BeTrue())
		Expect(l).To(Equal("b"))
		_, ok = v.Label(1)
		Expect(ok).To(BeFalse())
	})

	It("should replace a domain without touching the original", func() {
		v, err := NewVec([]float64{0, 1}, []string{"a", "b"}, 4)
		Expect(err).NotTo(HaveOccurred())

		w, err := v.WithDomain([]string{"x", "y"})
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Key()).To(Equal(v.Key()))
		Expect(w.Domain()).To(Equal([]string{"x", "y"}))
		Expect(v.Domain()).To(Equal([]string{"a", "b"}))

		u, err := v.WithDomain(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.IsCategorical()).To(BeFalse())

		_, err = v.WithDomain([]string{"x"})
		Expect(err).To(HaveOccurred())
	})

	It("should copy the layout of another vec", func() {
		v, err := NewVec([]float64{1, 2, 3}, nil, 2)
		Expect(err).NotTo(HaveOccurred())
		w, err := NewVecWithLayout(v, []float64{4, 5, 6}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.SameLayout(v)).To(BeTrue())
		Expect(w.Key()).NotTo(Equal(v.Key()))

		_, err = NewVecWithLayout(v, []float64{1}, nil)
		Expect(err).To(HaveOccurred())
	})

	It("should survive a JSON round trip with NAs", func() {
		v, err := NewVec([]float64{0, NA, 1}, []string{"a", "b"}, 2)
		Expect(err).NotTo(HaveOccurred())

		b, err := json.Marshal(v)
		Expect(err).NotTo(HaveOccurred())

		var w Vec
		Expect(json.Unmarshal(b, &w)).To(Succeed())
		Expect(w.Key()).To(Equal(v.Key()))
		Expect(w.Domain()).To(Equal([]string{"a", "b"}))
		Expect(w.SameLayout(v)).To(BeTrue())
		Expect(w.IsNA(1)).To(BeTrue())
		Expect(w.At(2)).To(Equal(1.0))
	})

	It("should encode infinities as strings", func() {
		v, err := NewVec([]float64{math.Inf(-1), NA, math.Inf(1), 2.5}, nil, 4)
		Expect(err).NotTo(HaveOccurred())

		b, err := json.Marshal(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(ContainSubstring(`[["-Inf",null,"Inf",2.5]]`))

		var w Vec
		Expect(json.Unmarshal(b, &w)).To(Succeed())
		Expect(w.At(0)).To(Equal(math.Inf(-1)))
		Expect(w.IsNA(1)).To(BeTrue())
		Expect(w.At(2)).To(Equal(math.Inf(1)))
		Expect(w.At(3)).To(Equal(2.5))

		Expect(json.Unmarshal([]byte(`{"key":"k","domain":null,"chunks":[["inf"]]}`), &w)).NotTo(Succeed())
	})
})

var _ = Describe("Frame", func() {
	It("should reject ragged and duplicate columns", func() {
		a, _ := NewVec([]float64{1, 2}, nil, 4)
		b, _ := NewVec([]float64{1}, nil, 4)
		_, err := NewFrame([]string{"a", "b"}, []*Vec{a, b})
		Expect(err).To(HaveOccurred())

		_, err = NewFrame([]string{"a", "a"}, []*Vec{a, a})
		Expect(err).To(HaveOccurred())
	})

	It("should default the column names", func() {
		a, _ := NewVec([]float64{1, 2}, nil, 4)
		f, err := NewFrame(nil, []*Vec{a, a})
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Names()).To(Equal([]string{"C1", "C2"}))
		Expect(f.Find("C2")).To(Equal(1))
		Expect(f.NumRows()).To(Equal(int64(2)))
	})

	It("should render NAs and levels", func() {
		a, _ := NewVec([]float64{1.5, NA}, nil, 4)
		b, _ := NewVec([]float64{1, 0}, []string{"lo", "hi"}, 4)
		f, err := NewFrame([]string{"num", "cat"}, []*Vec{a, b})
		Expect(err).NotTo(HaveOccurred())
		s := f.String()
		Expect(s).To(ContainSubstring("Frame 2 x 2"))
		Expect(s).To(ContainSubstring("1.5"))
		Expect(s).To(ContainSubstring("NA"))
		Expect(s).To(ContainSubstring("hi"))
	})
})

var _ = Describe("Loader", func() {
	It("should load frames from a YAML document under a JSONPath", func() {
		doc := `
dataset:
  frames:
    iris:
      columns:
      - name: width
        data: [1.5, 2, null]
      - name: species
        data: [setosa, virginica, setosa]
      - name: size
        domain: [s, m, l]
        data: [2, 0, null]
`
		fs, err := LoadFrames([]byte(doc), "$.dataset.frames", 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).To(HaveKey("iris"))

		f := fs["iris"]
		Expect(f.Names()).To(Equal([]string{"width", "species", "size"}))
		Expect(f.Vec(0).IsCategorical()).To(BeFalse())
		Expect(f.Vec(0).IsNA(2)).To(BeTrue())
		Expect(f.Vec(1).Domain()).To(Equal([]string{"setosa", "virginica"}))
		Expect(f.Vec(1).Values()).To(Equal([]float64{0, 1, 0}))
		Expect(f.Vec(2).Domain()).To(Equal([]string{"s", "m", "l"}))
		Expect(f.Vec(2).At(0)).To(Equal(2.0))
	})

	It("should reject unknown levels", func() {
		doc := `{"f": {"columns": [{"name": "c", "domain": ["a"], "data": ["b"]}]}}`
		_, err := LoadFrames([]byte(doc), "", 2)
		Expect(err).To(HaveOccurred())
	})

	It("should fail on an empty JSONPath selection", func() {
		_, err := LoadFrames([]byte(`{"a": {}}`), "$.b", 2)
		Expect(err).To(HaveOccurred())
	})
})
