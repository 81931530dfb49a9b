package qket

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given pool metrics", t, func() {
		m := NewMetrics()

		Convey("Recording jobs should update counts and rates", func() {
			start := time.Now().Add(-10 * time.Millisecond)
			m.recordJobExecution(start, true)
			m.recordJobExecution(start, true)
			m.recordJobExecution(start, true)
			m.recordJobExecution(start, false)

			out := m.ExportMetrics()
			So(out["job_count"], ShouldEqual, int64(4))
			So(out["failures"], ShouldEqual, int64(1))
			So(out["success_rate"], ShouldEqual, 0.75)
			So(m.AverageJobLatency, ShouldBeGreaterThanOrEqualTo, 10*time.Millisecond)
			So(m.P99JobLatency, ShouldBeGreaterThanOrEqualTo, m.P95JobLatency)
		})

		Convey("The latency window should stay bounded", func() {
			for i := 0; i < 1500; i++ {
				m.recordJobExecution(time.Now(), true)
			}
			So(len(m.latencies), ShouldEqual, m.windowSize)
		})
	})
}
