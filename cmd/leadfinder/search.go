package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"leadfinder-engine/internal/config"
	"leadfinder-engine/internal/domain"
	"leadfinder-engine/internal/search"
	"leadfinder-engine/internal/secrets"
	"leadfinder-engine/internal/source"
	"leadfinder-engine/internal/source/arbeitnow"
	"leadfinder-engine/internal/source/glassdoor"
	"leadfinder-engine/internal/source/indeed"
	"leadfinder-engine/internal/source/jobmail"
	"leadfinder-engine/internal/source/remoteok"
	"leadfinder-engine/internal/source/remotive"
	"leadfinder-engine/internal/source/util"
)

var (
	searchLocation   string
	searchPlatforms  []string
	searchLimit      int
	searchRemoteOnly bool
	searchExperience string
	searchJobType    string
	searchSalaryMin  int
	searchSalaryMax  int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search job boards and print merged results",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "preferred location")
	searchCmd.Flags().StringSliceVarP(&searchPlatforms, "platforms", "p", nil, "platforms to search (default: all enabled in config)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "max results per platform")
	searchCmd.Flags().BoolVar(&searchRemoteOnly, "remote-only", false, "keep remote roles only")
	searchCmd.Flags().StringVar(&searchExperience, "experience", "", "experience level filter")
	searchCmd.Flags().StringVar(&searchJobType, "job-type", "", "job type filter")
	searchCmd.Flags().IntVar(&searchSalaryMin, "salary-min", 0, "minimum salary")
	searchCmd.Flags().IntVar(&searchSalaryMax, "salary-max", 0, "maximum salary")
	rootCmd.AddCommand(searchCmd)
}

// buildSources mirrors the engine's wiring but stays quiet about jobmail
// credentials; a missing keychain entry just means that source comes back
// empty.
func buildSources(cfg config.Config) []source.Source {
	reqPerSec := cfg.Search.HostRequestsPerSec
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	burst := cfg.Search.HostBurst
	if burst <= 0 {
		burst = 1
	}
	limiter := util.NewHostLimiter(reqPerSec, burst)

	var sources []source.Source
	if cfg.Sources.RemoteOK.Enabled {
		sources = append(sources, remoteok.New(remoteok.Config{}, limiter))
	}
	if cfg.Sources.Arbeitnow.Enabled {
		sources = append(sources, arbeitnow.New(arbeitnow.Config{}, limiter))
	}
	if cfg.Sources.Remotive.Enabled {
		sources = append(sources, remotive.New(remotive.Config{}, limiter))
	}
	if cfg.Sources.Indeed.Enabled {
		sources = append(sources, indeed.New(indeed.Config{}, limiter))
	}
	if cfg.Sources.Glassdoor.Enabled {
		sources = append(sources, glassdoor.New(glassdoor.Config{}, limiter))
	}
	if cfg.Sources.Jobmail.Enabled {
		jm := cfg.Sources.Jobmail
		pw, _ := secrets.Get(secrets.IMAPAccount(cfg))
		sources = append(sources, jobmail.New(jobmail.Config{
			Addr:       fmt.Sprintf("%s:%d", jm.IMAPHost, jm.IMAPPort),
			Username:   jm.Username,
			Password:   pw,
			Mailbox:    jm.Mailbox,
			SubjectAny: jm.SubjectAny,
			SinceDays:  jm.SinceDays,
		}))
	}
	return sources
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg := search.NewRegistry(buildSources(cfg)...)
	agg := search.NewAggregator(reg, time.Duration(cfg.Search.SourceTimeoutSeconds)*time.Second)

	platforms := searchPlatforms
	if len(platforms) == 0 {
		platforms = reg.Names()
	}
	if len(platforms) == 0 {
		return fmt.Errorf("no sources enabled; check %q", "config.yml")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := agg.Search(ctx, domain.SearchRequest{
		Query:      args[0],
		Location:   searchLocation,
		Platforms:  platforms,
		MaxResults: searchLimit,
		Filters: domain.FilterSpec{
			ExperienceLevel: searchExperience,
			JobType:         searchJobType,
			RemoteOnly:      searchRemoteOnly,
			SalaryMin:       searchSalaryMin,
			SalaryMax:       searchSalaryMax,
		},
	})
	if err != nil {
		return err
	}

	printResult(res)
	return nil
}

func printResult(res domain.CombinedSearchResult) {
	for _, p := range res.PlatformsSearched {
		pr := res.ResultsByPlatform[p]
		line := fmt.Sprintf("%-12s %-8s %3d results in %.2fs", p, pr.Status, len(pr.Jobs), pr.Seconds)
		if pr.Error != "" {
			line += "  (" + pr.Error + ")"
		}
		if pr.Note != "" {
			line += "  (" + pr.Note + ")"
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d unique results for %q\n\n", res.TotalResults, res.Query)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tCOMPANY\tLOCATION\tPOSTED\tSOURCE")
	for _, j := range res.CombinedResults {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(j.Title, 48), truncate(j.Company, 28), truncate(j.Location, 24),
			j.PostedDate, j.SourcePlatform)
	}
	w.Flush()

	if len(res.CombinedResults) > 0 {
		fmt.Println()
		for _, j := range res.CombinedResults {
			if j.URL != "" {
				fmt.Printf("  %s\n    %s\n", truncate(j.Title, 70), j.URL)
			}
		}
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
