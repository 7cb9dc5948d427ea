// seed_tenders.go registers fixture tenders with a running Advisory API.
//
// Usage:
//
//	go run scripts/seed_tenders.go -api http://localhost:8700
//	go run scripts/seed_tenders.go -file tenders.json -dry-run
//
// The fixture file is a JSON array of tender objects. A "deadlineInDays" field
// is turned into a date relative to today, so fixtures stay current.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type tender struct {
	Code                 string   `json:"code,omitempty"`
	Title                string   `json:"title"`
	Budget               float64  `json:"budget"`
	Deadline             string   `json:"deadline,omitempty"`
	DeadlineInDays       *int     `json:"deadlineInDays,omitempty"`
	DurationMonths       int      `json:"durationMonths"`
	RequiredTechnologies []string `json:"requiredTechnologies"`
	RiskSummary          string   `json:"riskSummary,omitempty"`
}

func days(n int) *int { return &n }

var demoTenders = []tender{
	{
		Code:                 "OSK-2026-001",
		Title:                "Big Data and AI platform for the regional health service",
		Budget:               450000,
		DeadlineInDays:       days(20),
		DurationMonths:       12,
		RequiredTechnologies: []string{"Big Data", "IA", "Cloud Azure", "Python", "Seguridad"},
		RiskSummary:          "High-value opportunity aligned with the digital health strategy. Low technical risk.",
	},
	{
		Code:                 "AYT-2026-014",
		Title:                "Municipal open data portal maintenance",
		Budget:               85000,
		DeadlineInDays:       days(10),
		DurationMonths:       24,
		RequiredTechnologies: []string{"React", "Drupal", "CKAN"},
		RiskSummary:          "Low budget, incumbent supplier likely.",
	},
	{
		Code:                 "DFG-2026-007",
		Title:                "SAP S/4HANA migration for the provincial treasury",
		Budget:               1200000,
		DeadlineInDays:       days(5),
		DurationMonths:       18,
		RequiredTechnologies: []string{"SAP", "Java", "Cybersecurity"},
		RiskSummary:          "Very short preparation window.",
	},
}

func main() {
	file := flag.String("file", "", "JSON fixture file (defaults to the built-in demo set)")
	apiURL := flag.String("api", "http://localhost:8700", "Advisory API base URL")
	dryRun := flag.Bool("dry-run", false, "print tenders without posting")
	flag.Parse()

	tenders := demoTenders
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read fixtures: %v", err)
		}
		tenders = nil
		if err := json.Unmarshal(data, &tenders); err != nil {
			log.Fatalf("parse fixtures: %v", err)
		}
	}

	today := time.Now().UTC()
	for i := range tenders {
		if tenders[i].DeadlineInDays != nil {
			tenders[i].Deadline = today.AddDate(0, 0, *tenders[i].DeadlineInDays).Format("2006-01-02")
			tenders[i].DeadlineInDays = nil
		}
	}

	log.Printf("loaded %d tenders", len(tenders))

	if *dryRun {
		for i, t := range tenders {
			fmt.Printf("[%d] %s %s (budget=%.0f, deadline=%s, techs=%v)\n", i+1, t.Code, t.Title, t.Budget, t.Deadline, t.RequiredTechnologies)
		}
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	created, skipped := 0, 0
	for _, t := range tenders {
		body, _ := json.Marshal(t)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/tenders", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", t.Title, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", t.Title, err)
			skipped++
			continue
		}

		var out struct {
			Evaluation *struct {
				Decision struct {
					PercentScore int    `json:"percent_score"`
					Label        string `json:"label"`
				} `json:"decision"`
			} `json:"evaluation"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
			if out.Evaluation != nil {
				log.Printf("%s: %d%% %s", t.Code, out.Evaluation.Decision.PercentScore, out.Evaluation.Decision.Label)
			}
		} else {
			log.Printf("skip %q: status %d", t.Title, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
