package session_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fboinator/internal/annotate"
	"github.com/san-kum/fboinator/internal/chart"
	"github.com/san-kum/fboinator/internal/config"
	"github.com/san-kum/fboinator/internal/export"
	"github.com/san-kum/fboinator/internal/series"
	"github.com/san-kum/fboinator/internal/session"
)

var _ = Describe("Session", func() {
	var s *session.Session

	BeforeEach(func() {
		s = session.New(config.DefaultConfig())
	})

	Context("with default inputs", func() {
		It("shows the default text and eleven rows", func() {
			base, growth, maxN := s.Inputs()
			Expect(base).To(Equal("2.00"))
			Expect(growth).To(Equal("40.0"))
			Expect(maxN).To(Equal("10"))
			Expect(s.Rows()).To(HaveLen(11))
			Expect(s.CanExport()).To(BeTrue())
			Expect(s.InputErr()).NotTo(HaveOccurred())
		})

		It("starts with every series visible and annotations off", func() {
			Expect(s.Visible()).To(Equal(chart.AllVisible()))
			Expect(s.Annotations().Enabled).To(BeFalse())
		})
	})

	Context("seeded with rates finer than the field precision", func() {
		It("keeps the exact values", func() {
			cfg := config.DefaultConfig()
			cfg.BaseRate = 0.125
			cfg.GrowthRate = 12.34
			cfg.MaxIndex = 1
			s = session.New(cfg)

			base, growth, _ := s.Inputs()
			Expect(base).To(Equal("0.125"))
			Expect(growth).To(Equal("12.34"))
			Expect(s.Rows()).To(Equal(series.Generate(cfg.Params())))
		})

		It("still pads values that fit the precision", func() {
			Expect(session.FormatBase(5)).To(Equal("5.00"))
			Expect(session.FormatGrowth(-15)).To(Equal("-15.0"))
		})
	})

	Context("when an input changes", func() {
		It("recomputes on every edit", func() {
			s.SetMax("2")
			Expect(s.Rows()).To(HaveLen(3))
			Expect(s.Rows()[2].PerStep).To(BeNumerically("~", 3.92, 1e-9))

			s.SetGrowth("0")
			for _, r := range s.Rows() {
				Expect(r.PerStep).To(BeNumerically("~", 2.0, 1e-9))
			}
		})

		It("empties the session on unusable text", func() {
			s.SetBase("abc")
			Expect(s.Rows()).To(BeEmpty())
			Expect(s.CanExport()).To(BeFalse())
			Expect(s.InputErr()).To(MatchError(series.ErrInvalidInput))
			Expect(s.Scene()).To(BeNil())

			s.SetBase("3")
			Expect(s.Rows()).To(HaveLen(11))
		})

		It("treats a negative max index as no data", func() {
			s.SetMax("-5")
			Expect(s.Rows()).To(BeEmpty())
		})

		It("restores the defaults on reset", func() {
			s.SetBase("9")
			s.SetGrowth("1")
			s.SetMax("3")
			s.Reset()

			base, growth, maxN := s.Inputs()
			Expect([]string{base, growth, maxN}).To(Equal([]string{"2.00", "40.0", "10"}))
			Expect(s.Rows()).To(HaveLen(11))
		})

		It("switches the growth model", func() {
			mult := s.Rows()[3].PerStep
			Expect(s.CycleModel()).To(Equal(series.Odds))
			Expect(s.Rows()[3].PerStep).NotTo(BeNumerically("~", mult, 1e-6))
			Expect(s.CycleModel()).To(Equal(series.Multiplicative))
			Expect(s.Rows()[3].PerStep).To(BeNumerically("~", mult, 1e-12))
		})
	})

	Context("visibility", func() {
		It("persists across recomputes", func() {
			Expect(s.Toggle(1)).To(BeFalse())
			s.SetMax("4")
			Expect(s.Visible()).To(Equal(chart.Visibility{true, false, true}))

			s.SetVisible(1, true)
			s.SetVisible(7, false)
			Expect(s.Visible()).To(Equal(chart.AllVisible()))
			Expect(s.Toggle(-1)).To(BeFalse())
		})
	})

	Context("annotations", func() {
		It("only reach the scene when enabled", func() {
			s.SetAnnotationText("7,Uncle Bill\n12,Duggar\nbad line")
			Expect(s.Annotations().Items()).To(HaveLen(2))

			countMarks := func() int {
				n := 0
				for _, e := range s.Scene().Elements {
					if t, ok := e.(chart.Text); ok && t.Value == "Uncle Bill" {
						n++
					}
				}
				return n
			}
			Expect(countMarks()).To(Equal(0))

			s.SetAnnotationsEnabled(true)
			Expect(s.Annotations().Active()).To(Equal([]annotate.Annotation{{Index: 7, Label: "Uncle Bill"}, {Index: 12, Label: "Duggar"}}))
			Expect(countMarks()).To(Equal(1))
		})
	})

	Context("exports", func() {
		var (
			dir string
			d   *export.Downloader
		)

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
			d = export.NewDownloader(dir)
		})

		It("writes all three files", func() {
			for _, run := range []func(*export.Downloader) (string, error){s.ExportSVG, s.ExportPNG, s.ExportCSV} {
				path, err := run(d)
				Expect(err).NotTo(HaveOccurred())
				Expect(path).To(BeAnExistingFile())
			}
			Expect(filepath.Join(dir, "fboinator.svg")).To(BeAnExistingFile())
			Expect(filepath.Join(dir, "fboinator.png")).To(BeAnExistingFile())
			Expect(filepath.Join(dir, "fboinator.csv")).To(BeAnExistingFile())
		})

		It("is a no-op without rows", func() {
			s.SetMax("nope")
			_, err := s.ExportCSV(d)
			Expect(err).To(MatchError(export.ErrNoData))
			_, err = s.ExportPNG(d)
			Expect(err).To(MatchError(export.ErrNoData))

			entries, err := os.ReadDir(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("abandons a raster export when the font cannot be decoded", func() {
			d.Rasterizer = export.Rasterizer{FontData: []byte("junk")}
			_, err := s.ExportPNG(d)
			Expect(err).To(MatchError(export.ErrFontDecode))

			entries, err := os.ReadDir(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})
