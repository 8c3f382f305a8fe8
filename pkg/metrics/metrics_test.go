package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{1, 10}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then they are applied to the manager", func() {
			So(m.namespace, ShouldEqual, "test")
			So(m.subsystem, ShouldEqual, "unit")
			So(m.histogramBuckets, ShouldResemble, []float64{1, 10})
			So(m.Registry(), ShouldEqual, registry)
		})

		Convey("Then empty values keep the defaults", func() {
			d := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(nil))
			So(d.namespace, ShouldEqual, "smartwatch")
			So(d.subsystem, ShouldEqual, "charts")
			So(d.Registry(), ShouldNotBeNil)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording stage outcomes", func() {
			m.ObserveStage("heatmap", "load", 12)
			m.RecordStageFailure("heatmap", "load")
			m.RecordStageFailure("heatmap", "load")
			m.RecordChartRendered("radar")
			m.UpdateDatasetRows(42)
			m.UpdateMatrixNaNCells(3)

			Convey("Then the collectors reflect them", func() {
				So(testutil.ToFloat64(m.stageFailures.WithLabelValues("heatmap", "load")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.chartsRendered.WithLabelValues("radar")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.datasetRows), ShouldEqual, 42)
				So(testutil.ToFloat64(m.matrixNaNCells), ShouldEqual, 3)
				So(testutil.CollectAndCount(m.stageDuration), ShouldEqual, 1)
			})
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with a recorded chart", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
		m.RecordChartRendered("heatmap")

		Convey("When writing to a writable path", func() {
			path := filepath.Join(t.TempDir(), "charts.prom")
			err := m.WriteTextfile(path)

			Convey("Then the file holds the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `smartwatch_charts_charts_rendered_total{chart="heatmap"} 1`)
			})
		})

		Convey("When the directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "charts.prom"))

			Convey("Then an export error is returned", func() {
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})
	})
}

func TestDefaultManager(t *testing.T) {
	Convey("The default manager uses the custom registry", t, func() {
		So(Default(), ShouldNotBeNil)
		So(Default().Registry(), ShouldEqual, GetRegistry())
	})
}
