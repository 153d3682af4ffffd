// Command monitor is the terminal dashboard for the ShuleTrack API.
// It polls the dashboard endpoints through a TTL fetch cache and lets
// the operator page through schools and students.
//
// Commands: dashboard | schools [search] | students [search] |
// next | prev | page N | refresh | quit
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"shuletrack/internal/cache"
	"shuletrack/internal/client"
	"shuletrack/internal/config"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/domain/student"
	"shuletrack/internal/poller"
	"shuletrack/internal/render"
	"shuletrack/internal/services/data"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Section identifies the active monitor view.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionSchools   Section = "schools"
	SectionStudents  Section = "students"
)

// app holds all monitor state explicitly; nothing lives in globals.
// The view state is shared between the command loop and the poll
// goroutine (which renders dashboard snapshots), so it sits behind mu.
type app struct {
	cfg    config.MonitorCfg
	cache  *cache.Cache
	client *client.Client
	poller *poller.Poller
	out    io.Writer

	mu          sync.Mutex
	active      Section
	currentPage map[Section]int
	search      map[Section]string
}

func main() {
	cfg := config.LoadMonitor()

	a := &app{
		cfg:         cfg,
		cache:       cache.New(cfg.CacheEntries),
		out:         os.Stdout,
		active:      SectionDashboard,
		currentPage: map[Section]int{SectionSchools: 1, SectionStudents: 1},
		search:      map[Section]string{},
	}
	a.client = client.New(cfg.BaseURL, a.cache, cfg.StatsTTL, cfg.ListTTL)
	a.poller = poller.New(a.client, cfg.PollInterval, cfg.RetryDelay, a.renderDashboard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := waitForAPI(ctx, a.client); err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.BaseURL).Msg("API unreachable")
	}

	// The poller only runs while the dashboard section is active.
	a.poller.Start(ctx)
	defer a.poller.Stop()

	fmt.Fprintf(a.out, "shuletrack monitor: %s (poll %s)\n", cfg.BaseURL, cfg.PollInterval)
	a.commandLoop(ctx)
}

// waitForAPI probes /health until the server answers, with capped
// exponential backoff so a cold-started stack has time to come up.
func waitForAPI(ctx context.Context, c *client.Client) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	return backoff.Retry(func() error {
		hs, err := c.Health(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("waiting for API")
			return err
		}
		log.Info().Str("env", hs.Environment).Int64("uptime", hs.Uptime).Msg("API reachable")
		return nil
	}, backoff.WithContext(bo, ctx))
}

func (a *app) commandLoop(ctx context.Context) {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Fprint(a.out, "> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			fmt.Fprint(a.out, "> ")
			continue
		}
		cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

		switch cmd {
		case "quit", "exit":
			return
		case "dashboard":
			a.switchSection(ctx, SectionDashboard)
		case "schools":
			a.resetSection(SectionSchools, rest)
			a.switchSection(ctx, SectionSchools)
		case "students":
			a.resetSection(SectionStudents, rest)
			a.switchSection(ctx, SectionStudents)
		case "next":
			a.stepPage(ctx, 1)
		case "prev":
			a.stepPage(ctx, -1)
		case "page":
			if n, err := strconv.Atoi(rest); err == nil {
				a.setPage(ctx, n)
			} else {
				fmt.Fprintln(a.out, "usage: page N")
			}
		case "refresh":
			// Manual refresh wipes the whole cache, then reloads the
			// active section.
			a.cache.Clear()
			a.loadSection(ctx)
		default:
			fmt.Fprintln(a.out, "commands: dashboard | schools [search] | students [search] | next | prev | page N | refresh | quit")
		}
		fmt.Fprint(a.out, "> ")
	}
}

// resetSection stores a fresh search term and rewinds the section to
// its first page.
func (a *app) resetSection(s Section, search string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.search[s] = search
	a.currentPage[s] = 1
}

// switchSection moves the view and starts or stops the poller so it
// only ticks while the dashboard is visible. The section is committed
// before Start so the poller's immediate first refresh renders instead
// of seeing the previous view.
func (a *app) switchSection(ctx context.Context, s Section) {
	a.mu.Lock()
	prev := a.active
	a.active = s
	a.mu.Unlock()

	if prev == SectionDashboard && s != SectionDashboard {
		a.poller.Stop()
	}
	if prev != SectionDashboard && s == SectionDashboard {
		a.poller.Start(ctx)
	}
	a.loadSection(ctx)
}

// setPage is the absolute mutation path for a section's current page;
// stepPage is the relative one. Both clamp to page 1.
func (a *app) setPage(ctx context.Context, n int) {
	a.mu.Lock()
	if a.active == SectionDashboard {
		a.mu.Unlock()
		return
	}
	if n < 1 {
		n = 1
	}
	a.currentPage[a.active] = n
	a.mu.Unlock()
	a.loadSection(ctx)
}

func (a *app) stepPage(ctx context.Context, delta int) {
	a.mu.Lock()
	if a.active == SectionDashboard {
		a.mu.Unlock()
		return
	}
	n := a.currentPage[a.active] + delta
	if n < 1 {
		n = 1
	}
	a.currentPage[a.active] = n
	a.mu.Unlock()
	a.loadSection(ctx)
}

func (a *app) section() Section {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *app) loadSection(ctx context.Context) {
	switch a.section() {
	case SectionDashboard:
		// The poller renders on its own cadence; nothing to load here.
		fmt.Fprintln(a.out, "sync:", a.poller.SyncStatus())
	case SectionSchools:
		a.renderSchools(ctx)
	case SectionStudents:
		a.renderStudents(ctx)
	}
}

// renderDashboard runs on the poll goroutine.
func (a *app) renderDashboard(s poller.Snapshot) {
	if a.section() != SectionDashboard {
		return
	}
	fmt.Fprintln(a.out)
	render.KPICards(a.out, s.Stats, s.KPIs)
	fmt.Fprintf(a.out, "\nsync: %s\n> ", a.poller.SyncStatus())
}

func (a *app) renderSchools(ctx context.Context) {
	a.mu.Lock()
	f := school.Filter{Search: a.search[SectionSchools]}
	page := a.currentPage[SectionSchools]
	a.mu.Unlock()

	res, err := a.client.Schools(ctx, f, page, data.DefaultSchoolLimit)
	if err != nil {
		// Non-dashboard sections surface the error and wait for a
		// manual reload; there is no retry loop here.
		log.Error().Err(err).Msg("schools load failed")
		fmt.Fprintln(a.out, "load failed, try refresh")
		return
	}
	render.Table(a.out, render.SchoolHeader, render.SchoolRows(res.Data))
	fmt.Fprintln(a.out, render.NewPageControls(res.Pagination).Format(res.Pagination.Total))
}

func (a *app) renderStudents(ctx context.Context) {
	a.mu.Lock()
	f := student.Filter{Search: a.search[SectionStudents]}
	page := a.currentPage[SectionStudents]
	a.mu.Unlock()

	res, err := a.client.Students(ctx, f, page, data.DefaultStudentLimit)
	if err != nil {
		log.Error().Err(err).Msg("students load failed")
		fmt.Fprintln(a.out, "load failed, try refresh")
		return
	}
	render.Table(a.out, render.StudentHeader, render.StudentRows(res.Data))
	fmt.Fprintln(a.out, render.NewPageControls(res.Pagination).Format(res.Pagination.Total))
}
