package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	json "github.com/goccy/go-json"
)

const (
	programStart = "2025-01-06"
	programDays  = 90
)

var mealSlots = []string{
	"Early Morning (6:00 AM)",
	"Pre-Workout (7:00 AM)",
	"Breakfast (9:00 AM)",
	"Mid-Morning Snack (11:30 AM)",
	"Lunch (1:30 PM)",
	"Evening Snack (4:30 PM)",
	"Dinner (8:00 PM)",
	"Before Bed (10:00 PM)",
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var readRoutes = []string{"/today", "/progress", "/weights", "/milestones", "/notifications", "/workouts", "/meals", "/guidelines"}

type sample struct {
	label   string
	latency time.Duration
	failed  bool
}

type routeStats struct {
	count     int64
	failures  int64
	latencies []time.Duration
}

type tally map[string]*routeStats

func (t tally) add(s sample) {
	rs, ok := t[s.label]
	if !ok {
		rs = &routeStats{}
		t[s.label] = rs
	}
	rs.count++
	if s.failed {
		rs.failures++
	}
	rs.latencies = append(rs.latencies, s.latency)
}

func (t tally) merge(other tally) {
	for label, o := range other {
		rs, ok := t[label]
		if !ok {
			t[label] = o
			continue
		}
		rs.count += o.count
		rs.failures += o.failures
		rs.latencies = append(rs.latencies, o.latencies...)
	}
}

type client struct {
	base string
	http *http.Client
}

func newClient(base string) *client {
	return &client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        200,
				MaxIdleConnsPerHost: 200,
				IdleConnTimeout:     30 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   2 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
	}
}

// do sends one request and reports it as failed unless the response carries
// the expected status. out, when set, receives the decoded body.
func (c *client) do(method, path string, body any, expect int, out any) sample {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	s := sample{label: method + " " + path}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		s.failed = true
		return s
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	s.latency = time.Since(start)
	if err != nil {
		s.failed = true
		return s
	}
	defer resp.Body.Close()

	s.failed = resp.StatusCode != expect
	if out != nil && !s.failed {
		s.failed = json.NewDecoder(resp.Body).Decode(out) != nil
		return s
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return s
}

func (c *client) waitReady(attempts int) bool {
	for i := 0; i < attempts; i++ {
		if !c.do(http.MethodGet, "/health", nil, http.StatusOK, nil).failed {
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func programDate(f *gofakeit.Faker) string {
	start, _ := time.Parse("2006-01-02", programStart)
	return start.AddDate(0, 0, f.Number(0, programDays-1)).Format("2006-01-02")
}

// write posts one random progress event. One in twenty weights is outside the
// accepted bounds and must be rejected.
func write(c *client, f *gofakeit.Faker) sample {
	switch f.Number(0, 2) {
	case 0:
		if f.Number(1, 20) == 1 {
			return c.do(http.MethodPost, "/weights", map[string]any{"weight": f.Float64Range(300, 400)}, http.StatusUnprocessableEntity, nil)
		}
		return c.do(http.MethodPost, "/weights", map[string]any{
			"date":   programDate(f),
			"weight": float64(int(f.Float64Range(69, 76)*10)) / 10,
		}, http.StatusCreated, nil)
	case 1:
		return c.do(http.MethodPost, "/workouts/complete", map[string]any{
			"date":    programDate(f),
			"weekday": weekdays[f.Number(0, len(weekdays)-1)],
		}, http.StatusCreated, nil)
	default:
		return c.do(http.MethodPost, "/meals/complete", map[string]any{
			"date": programDate(f),
			"slot": mealSlots[f.Number(0, len(mealSlots)-1)],
		}, http.StatusCreated, nil)
	}
}

func read(c *client, f *gofakeit.Faker) sample {
	return c.do(http.MethodGet, readRoutes[f.Number(0, len(readRoutes)-1)], nil, http.StatusOK, nil)
}

func runPhase(ctx context.Context, workers int, work func(f *gofakeit.Faker) sample) tally {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		total = tally{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			local := tally{}
			f := gofakeit.New(seed)
			for ctx.Err() == nil {
				local.add(work(f))
			}
			mu.Lock()
			total.merge(local)
			mu.Unlock()
		}(time.Now().UnixNano() + int64(i))
	}
	wg.Wait()
	return total
}

// checkConsistency records today's weight and expects the progress view served
// right after to report it.
func checkConsistency(c *client, f *gofakeit.Faker, rounds int) int {
	mismatches := 0
	for i := 0; i < rounds; i++ {
		weight := float64(int(f.Float64Range(69, 76)*10)) / 10
		if c.do(http.MethodPost, "/weights", map[string]any{"weight": weight}, http.StatusCreated, nil).failed {
			mismatches++
			continue
		}
		var progress struct {
			CurrentWeight float64 `json:"current_weight"`
		}
		if c.do(http.MethodGet, "/progress", nil, http.StatusOK, &progress).failed || progress.CurrentWeight != weight {
			mismatches++
		}
	}
	return mismatches
}

func main() {
	target := flag.String("target", "http://127.0.0.1:8090", "FitTrack base URL")
	workers := flag.Int("workers", 50, "concurrent workers per phase")
	duration := flag.Duration("duration", 10*time.Second, "length of each phase")
	flag.Parse()

	c := newClient(*target)
	fmt.Println("=== FitTrack Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", *workers, *duration, c.base)

	if !c.waitReady(30) {
		fmt.Println("server not responding")
		os.Exit(1)
	}

	phases := []struct {
		name string
		work func(f *gofakeit.Faker) sample
	}{
		{"Logging progress (POST only)", func(f *gofakeit.Faker) sample { return write(c, f) }},
		{"Mixed load (30% POST, 70% GET)", func(f *gofakeit.Faker) sample {
			if f.Float64() < 0.30 {
				return write(c, f)
			}
			return read(c, f)
		}},
		{"Dashboard polling (GET only)", func(f *gofakeit.Faker) sample { return read(c, f) }},
	}
	for i, p := range phases {
		fmt.Printf("\n--- Phase %d: %s ---\n", i+1, p.name)
		ctx, cancel := context.WithTimeout(context.Background(), *duration)
		report(runPhase(ctx, *workers, p.work), *duration)
		cancel()
	}

	fmt.Println("\n--- Consistency: progress reflects the latest weight ---")
	if n := checkConsistency(c, gofakeit.New(0), 100); n > 0 {
		fmt.Printf("  %d/100 stale or failed reads\n", n)
		os.Exit(1)
	}
	fmt.Println("  OK")
}

func report(t tally, duration time.Duration) {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s\n", "Route", "Reqs", "Fail", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 80))

	var count, failures int64
	for _, label := range labels {
		rs := t[label]
		count += rs.count
		failures += rs.failures
		sort.Slice(rs.latencies, func(i, j int) bool { return rs.latencies[i] < rs.latencies[j] })
		fmt.Printf("  %-26s %8d %6d %10s %10s %10s\n", label, rs.count, rs.failures,
			quantile(rs.latencies, 0.50), quantile(rs.latencies, 0.95), quantile(rs.latencies, 0.99))
	}

	fmt.Println("  " + strings.Repeat("-", 80))
	if count == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Failed: %d (%.1f%%) | RPS: %.0f\n",
		count, failures, float64(failures)/float64(count)*100, float64(count)/duration.Seconds())
}

func quantile(sorted []time.Duration, q float64) string {
	if len(sorted) == 0 {
		return "-"
	}
	d := sorted[min(int(float64(len(sorted))*q), len(sorted)-1)]
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
