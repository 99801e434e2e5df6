package dag

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDAG(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "DAG")
}

var _ = Describe("Graph", func() {
	It("should add nodes and edges", func() {
		g := New()
		Expect(g.AddNode("a")).To(BeTrue())
		Expect(g.AddNode("b")).To(BeTrue())
		Expect(g.AddNode("c")).To(BeTrue())
		Expect(g.AddNode("a")).To(BeFalse())

		g.AddEdge("a", "c")
		g.AddEdge("a", "b")
		Expect(g.HasNode("b")).To(BeTrue())
		Expect(g.HasEdge("a", "b")).To(BeTrue())
		Expect(g.HasEdge("b", "a")).To(BeFalse())
		Expect(g.Edges("a")).To(Equal([]string{"b", "c"}))
		Expect(g.Roots()).To(Equal([]string{"a"}))
	})

	It("should sort topologically", func() {
		g := New()
		for _, n := range []string{"d", "c", "b", "a"} {
			g.AddNode(n)
		}
		g.AddEdge("a", "b")
		g.AddEdge("b", "d")
		g.AddEdge("a", "c")

		order, err := g.TopoSort()
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal([]string{"a", "c", "b", "d"}))
	})

	It("should keep insertion order for independent nodes", func() {
		g := New()
		for _, n := range []string{"z", "y", "x"} {
			g.AddNode(n)
		}
		order, err := g.TopoSort()
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal([]string{"z", "y", "x"}))
	})

	It("should detect cycles", func() {
		g := New()
		for _, n := range []string{"a", "b", "c", "d"} {
			g.AddNode(n)
		}
		g.AddEdge("d", "a")
		g.AddEdge("a", "b")
		g.AddEdge("b", "c")
		g.AddEdge("c", "b")

		_, err := g.TopoSort()
		Expect(err).To(MatchError(ContainSubstring("dependency cycle among b, c")))
	})
})
