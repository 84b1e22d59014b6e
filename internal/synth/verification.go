package synth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/futvis/internal/domain/types"
	"github.com/okian/futvis/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ErrVerification is returned when a running dashboard breaks an invariant.
var ErrVerification = errors.New("verification failed")

const svgContentType = "image/svg+xml"

// checkServiceHealth verifies the dashboard has a dataset loaded.
func checkServiceHealth(ctx context.Context, c *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	var h types.Health
	if err := c.getJSON(ctx, "/healthz", &h); err != nil {
		return errors.Wrap(err, "failed to reach service")
	}
	if h.Status != "ok" {
		return errors.Wrapf(ErrVerification, "service status %q", h.Status)
	}
	logger.Get().Info(ctx, "service is healthy", logger.String("dataset", h.DatasetID))
	return nil
}

// verifyOccupancy checks that the zones of every minute with samples add up
// to 100 percent, give or take rounding.
func verifyOccupancy(ctx context.Context, c *HTTPClient, stats *Stats) error {
	var occ types.Occupancy
	if err := c.getJSON(ctx, "/api/occupancy", &occ); err != nil {
		return err
	}

	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, r := range occ.Rows {
		sums[r.Minute] += r.Percentage
		counts[r.Minute] += r.Count
	}
	for minute, n := range counts {
		if n == 0 {
			continue
		}
		stats.MinutesChecked++
		if d := sums[minute] - percentTarget; d < -percentTolerance || d > percentTolerance {
			return errors.Wrapf(ErrVerification, "minute %d sums to %d%%", minute, sums[minute])
		}
	}
	logger.Get().Info(ctx, "occupancy verified",
		logger.Int("minutes", stats.MinutesChecked),
		logger.String("rounding", occ.Rounding))
	return nil
}

// verifyPanels fetches every panel over the full match concurrently and
// checks each one comes back as an SVG image.
func verifyPanels(ctx context.Context, c *HTTPClient, stats *Stats) error {
	var meta types.Meta
	if err := c.getJSON(ctx, "/api/meta", &meta); err != nil {
		return err
	}

	failed := make([]bool, len(types.Panels))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range types.Panels {
		g.Go(func() error {
			path := "/panels/" + string(p) + ".svg?start=0&end=" + strconv.Itoa(meta.MaxMinute) + "&second=0"
			resp, err := c.Get(gctx, path)
			if err != nil {
				return errors.Wrapf(err, "fetch panel %s", p)
			}
			body, err := readResponseBody(resp)
			if err != nil {
				return err
			}
			ct := resp.Header.Get("Content-Type")
			if resp.StatusCode != http.StatusOK || !strings.HasPrefix(ct, svgContentType) || !strings.Contains(string(body), "<svg") {
				failed[i] = true
				logger.Get().Warn(gctx, "panel check failed",
					logger.String("panel", string(p)),
					logger.Int("status", resp.StatusCode),
					logger.String("contentType", ct))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range failed {
		stats.PanelsChecked++
		if failed[i] {
			stats.PanelsFailed++
		}
	}
	if stats.PanelsFailed > 0 {
		return errors.Wrapf(ErrVerification, "%d of %d panels failed", stats.PanelsFailed, stats.PanelsChecked)
	}
	logger.Get().Info(ctx, "panels verified", logger.Int("panels", stats.PanelsChecked))
	return nil
}
