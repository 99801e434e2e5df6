package session

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	tu "github.com/l7mp/frameops/internal/testutils"
	"github.com/l7mp/frameops/pkg/expression"
	"github.com/l7mp/frameops/pkg/prim"
	"github.com/l7mp/frameops/pkg/value"
)

var (
	loglevel = -10
	logger   = zap.New(zap.UseFlagOptions(&zap.Options{
		Development:     true,
		DestWriter:      GinkgoWriter,
		StacktraceLevel: zapcore.Level(3),
		TimeEncoder:     zapcore.RFC3339NanoTimeEncoder,
		Level:           zapcore.Level(loglevel),
	}))
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session")
}

var _ = Describe("Session", func() {
	var s *Session
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		s = New(Options{ChunkSize: tu.TestChunkSize, Parallelism: 2, Logger: logger})
		Expect(s.AddFrame("x", tu.Frame(tu.NumVec(0, 1, 1, 0, 1)))).To(Succeed())
		Expect(s.AddFrame("cat", tu.Frame(tu.CatVec([]string{"a", "b", "c"}, 0, 2, 2, 0)))).To(Succeed())
	})

	It("should register frames", func() {
		Expect(s.Names()).To(Equal([]string{"cat", "x"}))
		f, ok := s.Frame("x")
		Expect(ok).To(BeTrue())
		_, ok, err := s.Store().Get(f.Vec(0).Key())
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		Expect(s.AddFrame("", f)).NotTo(Succeed())
	})

	It("should evaluate an expression", func() {
		exp := expression.NewCallExpression("which", expression.NewFrameExpression("x"))
		res, err := s.Eval(ctx, &exp)
		Expect(err).NotTo(HaveOccurred())
		tu.ExpectColumn(tu.ExpectFrame(res).Vec(0), 1, 2, 4)
	})

	It("should run a script in dependency order", func() {
		script, err := LoadScript([]byte(`
n: {"@nrow": {"@frame": "sel"}}
sel: {"@which": {"@frame": "neg"}}
neg: {"@!!": {"@frame": "x"}}
relabeled: {"@setDomain": [{"@frame": "cat"}, ["lo", "hi"]]}
`))
		Expect(err).NotTo(HaveOccurred())

		order, err := Order(script)
		Expect(err).NotTo(HaveOccurred())
		Expect(order).To(Equal([]string{"neg", "relabeled", "sel", "n"}))
		Expect(Entries(script)).To(Equal([]string{"neg", "relabeled"}))

		res, err := s.Run(ctx, script)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveLen(4))
		Expect(res[3].Name).To(Equal("n"))
		Expect(res[3].Value).To(Equal(value.Num(2)))

		sel, ok := s.Frame("sel")
		Expect(ok).To(BeTrue())
		tu.ExpectColumn(sel.Vec(0), 0, 3)

		rel, ok := s.Frame("relabeled")
		Expect(ok).To(BeTrue())
		Expect(rel.Vec(0).Domain()).To(Equal([]string{"lo", "hi"}))

		// the source frame is untouched
		cat, _ := s.Frame("cat")
		Expect(cat.Vec(0).Domain()).To(Equal([]string{"a", "b", "c"}))
	})

	It("should reject cycles", func() {
		script, err := LoadScript([]byte(`
a: {"@abs": {"@frame": "b"}}
b: {"@abs": {"@frame": "a"}}
`))
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Run(ctx, script)
		Expect(err).To(MatchError(ContainSubstring("dependency cycle")))

		script, err = LoadScript([]byte(`x: {"@abs": {"@frame": "x"}}`))
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Run(ctx, script)
		Expect(err).To(HaveOccurred())
	})

	It("should stop at the first failing assignment", func() {
		script, err := LoadScript([]byte(`
a: {"@nlevels": {"@frame": "x"}}
b: {"@setLevel": [{"@frame": "x"}, "a"]}
`))
		Expect(err).NotTo(HaveOccurred())
		res, err := s.Run(ctx, script)
		Expect(err).To(MatchError(prim.ErrInvalidArgument))
		Expect(err.Error()).To(ContainSubstring(`assignment "b"`))
		Expect(res).To(HaveLen(1))
	})

	It("should reject malformed scripts", func() {
		_, err := LoadScript([]byte("a: {b: 1}\n"))
		Expect(err).To(HaveOccurred())
		_, err = LoadScript([]byte("- 1\n"))
		Expect(err).To(HaveOccurred())
	})
})
