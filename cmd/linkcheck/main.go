// linkcheck 检查项目的在线地址和仓库地址是否可访问
//
// 用法：
//
//	go run ./cmd/linkcheck [-data data] [-timeout 15s]
//
// 任一链接失败时退出码为 1。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gonewx/portfolio/pkg/config"
	"github.com/gonewx/portfolio/pkg/embedded"
)

// LinkResult 单个链接的检查结果
type LinkResult struct {
	Project string
	Kind    string // live / repo
	URL     string
	Status  int
	Err     error
}

// OK 链接是否可访问
func (r LinkResult) OK() bool {
	return r.Err == nil && r.Status >= 200 && r.Status < 400
}

// projectLinks 展开项目中所有非空链接
func projectLinks(projects []config.ProjectRecord) []LinkResult {
	var links []LinkResult
	for _, p := range projects {
		if p.LiveLink != "" {
			links = append(links, LinkResult{Project: p.ID, Kind: "live", URL: p.LiveLink})
		}
		if p.RepoLink != "" {
			links = append(links, LinkResult{Project: p.ID, Kind: "repo", URL: p.RepoLink})
		}
	}
	return links
}

// checkLinks 并发访问所有链接
func checkLinks(links []LinkResult, timeout time.Duration) []LinkResult {
	c := colly.NewCollector(
		colly.Async(true),
		colly.AllowURLRevisit(),
		colly.UserAgent("portfolio-linkcheck/1.0"),
	)
	c.SetRequestTimeout(timeout)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 4}); err != nil {
		log.Printf("[LinkCheck] Warning: limit rule: %v", err)
	}

	var mu sync.Mutex
	results := make([]LinkResult, len(links))
	copy(results, links)

	record := func(r *colly.Response, err error) {
		idx, ok := r.Ctx.GetAny("index").(int)
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		results[idx].Status = r.StatusCode
		results[idx].Err = err
	}
	c.OnResponse(func(r *colly.Response) { record(r, nil) })
	c.OnError(record)

	for i, l := range links {
		ctx := colly.NewContext()
		ctx.Put("index", i)
		if err := c.Request("GET", l.URL, nil, ctx, nil); err != nil {
			results[i].Err = err
		}
	}
	c.Wait()
	return results
}

func main() {
	dataDir := flag.String("data", "data", "数据目录")
	timeout := flag.Duration("timeout", 15*time.Second, "单个请求超时")
	flag.Parse()

	root := os.DirFS(".")
	embedded.Init(root, root)

	content, err := config.LoadContent(*dataDir)
	if err != nil {
		log.Fatalf("[LinkCheck] %v", err)
	}

	results := checkLinks(projectLinks(content.Projects), *timeout)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Project < results[j].Project })

	failed := 0
	for _, r := range results {
		status := "OK  "
		if !r.OK() {
			status = "FAIL"
			failed++
		}
		detail := fmt.Sprintf("%d", r.Status)
		if r.Err != nil {
			detail = r.Err.Error()
		}
		fmt.Printf("%s %-20s %-4s %s (%s)\n", status, r.Project, r.Kind, r.URL, detail)
	}
	fmt.Printf("\n%d links checked, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
