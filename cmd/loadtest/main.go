package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/awmpietro/hr-workflow-sandbox/internal/document"
	"github.com/awmpietro/hr-workflow-sandbox/internal/xjson"
)

// sample is one finished request.
type sample struct {
	path    string
	latency time.Duration
	status  int
	err     error
}

type stats struct {
	latencies []time.Duration
	ok        int
	bad       int
	failed    int
}

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	paths := flag.String("paths", "/simulate,/validate", "comma separated POST endpoints, requests rotate over them")
	templateID := flag.String("template", "template-onboarding", "template used as request payload")
	rps := flag.Int("rps", 50, "target requests per second")
	duration := flag.Duration("duration", 60*time.Second, "test duration")
	workers := flag.Int("workers", 50, "number of concurrent workers")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP client timeout")
	maxP90 := flag.Duration("p90", 30*time.Millisecond, "P90 latency target per endpoint")
	flag.Parse()

	if *rps <= 0 || *duration <= 0 || *workers <= 0 {
		fmt.Fprintln(os.Stderr, "rps, duration and workers must be > 0")
		os.Exit(2)
	}

	endpoints := splitPaths(*paths)
	if len(endpoints) == 0 {
		fmt.Fprintln(os.Stderr, "at least one endpoint path is required")
		os.Exit(2)
	}

	body, err := payload(*templateID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	jobs := make(chan string, *workers)
	samples := make(chan sample, *workers)

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				samples <- fire(client, strings.TrimRight(*base, "/")+path, path, body)
			}
		}()
	}

	byPath := make(map[string]*stats, len(endpoints))
	for _, p := range endpoints {
		byPath[p] = &stats{}
	}
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for s := range samples {
			st := byPath[s.path]
			st.latencies = append(st.latencies, s.latency)
			switch {
			case s.err != nil:
				st.failed++
			case s.status >= 200 && s.status < 300:
				st.ok++
			default:
				st.bad++
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	ticker := time.NewTicker(time.Second / time.Duration(*rps))
	defer ticker.Stop()

	launched := 0
dispatch:
	for {
		select {
		case <-ctx.Done():
			break dispatch
		case <-ticker.C:
			jobs <- endpoints[launched%len(endpoints)]
			launched++
		}
	}
	close(jobs)
	wg.Wait()
	close(samples)
	<-collected

	if launched == 0 {
		fmt.Fprintln(os.Stderr, "no requests executed")
		os.Exit(1)
	}

	achieved := float64(launched) / duration.Seconds()
	fmt.Printf("Load test finished: target_rps=%d achieved_rps=%.2f duration=%s requests=%d\n",
		*rps, achieved, duration, launched)

	pass := achieved >= float64(*rps)*0.98
	for _, p := range endpoints {
		st := byPath[p]
		slices.Sort(st.latencies)
		p90 := percentile(st.latencies, 90)
		fmt.Printf("%-12s n=%d 2xx=%d non_2xx=%d errors=%d p50_ms=%.3f p90_ms=%.3f p99_ms=%.3f\n",
			p, len(st.latencies), st.ok, st.bad, st.failed,
			ms(percentile(st.latencies, 50)), ms(p90), ms(percentile(st.latencies, 99)))
		if st.bad > 0 || st.failed > 0 || p90 >= *maxP90 {
			pass = false
		}
	}

	if pass {
		fmt.Printf("PASS: meets %d RPS and P90 < %s on every endpoint\n", *rps, maxP90)
		return
	}
	fmt.Println("FAIL: does not meet target (or has request errors)")
	os.Exit(1)
}

func splitPaths(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		out = append(out, p)
	}
	return out
}

func payload(templateID string) ([]byte, error) {
	for _, tpl := range document.Templates(time.Now()) {
		if tpl.ID == templateID {
			return xjson.Marshal(tpl.Snapshot())
		}
	}
	return nil, fmt.Errorf("unknown template %q", templateID)
}

func fire(client *http.Client, url, path string, body []byte) sample {
	start := time.Now()
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return sample{path: path, latency: time.Since(start), err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return sample{path: path, latency: time.Since(start), status: resp.StatusCode}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[(len(sorted)-1)*p/100]
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
