package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketresume/rocket/pkg/db"
	"github.com/rocketresume/rocket/pkg/model"
	"github.com/rocketresume/rocket/pkg/persona"
	gormstore "github.com/rocketresume/rocket/pkg/server/store/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data",
	Long: `Seed the database with reference data: coaching persona profiles,
resume templates, and a few sample job postings to match against.

Personas and templates are upserted by ID, so re-running after an
upgrade refreshes them in place. Sample job postings are only created
when the database has no global postings yet.

Example:
  rocketctl seed
  rocketctl seed --skip-jobs`,
	Run: func(cmd *cobra.Command, args []string) {
		skipJobs, _ := cmd.Flags().GetBool("skip-jobs")

		if err := runSeed(skipJobs); err != nil {
			fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Bool("skip-jobs", false, "do not create sample job postings")
}

func runSeed(skipJobs bool) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	personas := gormstore.NewPersonasStore(database)
	catalog := persona.All()
	for _, p := range catalog {
		profile, err := p.Profile()
		if err != nil {
			return fmt.Errorf("encoding persona %s: %w", p.ID, err)
		}
		if err := personas.UpsertPersona(profile); err != nil {
			return fmt.Errorf("seeding persona %s: %w", p.ID, err)
		}
	}
	fmt.Printf("Seeded %d persona profiles\n", len(catalog))

	templates := gormstore.NewTemplatesStore(database)
	for _, t := range builtinTemplates() {
		if err := templates.UpsertTemplate(t); err != nil {
			return fmt.Errorf("seeding template %s: %w", t.ID, err)
		}
	}
	fmt.Printf("Seeded %d resume templates\n", len(builtinTemplates()))

	if skipJobs {
		return nil
	}

	jobs := gormstore.NewJobsStore(database)
	_, total, err := jobs.ListJobs("", 1, 0)
	if err != nil {
		return fmt.Errorf("checking existing postings: %w", err)
	}
	if total > 0 {
		fmt.Println("Global job postings already present, skipping")
		return nil
	}

	samples := sampleJobs()
	for _, j := range samples {
		if err := jobs.CreateJob(j); err != nil {
			return fmt.Errorf("seeding job posting %q: %w", j.Title, err)
		}
	}
	fmt.Printf("Seeded %d sample job postings\n", len(samples))
	return nil
}

// builtinTemplates is the template catalog served by /api/v1/templates.
// IDs are referenced by frontend clients and must stay stable.
func builtinTemplates() []*model.ResumeTemplate {
	sections := model.JSON(`["contact","summary","experience","education","skills"]`)
	return []*model.ResumeTemplate{
		{
			ID:          "classic",
			Name:        "Classic",
			Description: "Single-column serif layout for conservative industries.",
			Accent:      "#1f2937",
			Sections:    sections,
		},
		{
			ID:          "modern",
			Name:        "Modern",
			Description: "Two-column layout with a skills sidebar and a color accent.",
			Accent:      "#2563eb",
			Sections:    model.JSON(`["contact","summary","skills","experience","education"]`),
		},
		{
			ID:          "compact",
			Name:        "Compact",
			Description: "Dense one-page layout for experienced candidates.",
			Accent:      "#0f766e",
			Sections:    sections,
		},
		{
			ID:          "executive",
			Name:        "Executive",
			Description: "Leadership-first layout opening with a highlights section.",
			Accent:      "#7c2d12",
			Sections:    model.JSON(`["contact","summary","highlights","experience","education"]`),
		},
	}
}

// sampleJobs returns the global postings new installs get to match
// against before anyone has created their own.
func sampleJobs() []*model.JobPosting {
	return []*model.JobPosting{
		{
			Title:    "Senior Backend Engineer",
			Company:  "Northwind Labs",
			Location: "Remote",
			Description: "We are looking for a senior backend engineer to own our " +
				"API platform. You will design PostgreSQL schemas, build Go " +
				"services, and operate RabbitMQ pipelines. Required: 5+ years " +
				"of backend experience, Go, PostgreSQL. Nice to have: AWS, " +
				"Kubernetes, Terraform.",
			Skills:    model.JSON(`["go","postgresql","rabbitmq","aws","kubernetes"]`),
			Seniority: "senior",
		},
		{
			Title:    "Data Analyst",
			Company:  "Harbor Metrics",
			Location: "New York, NY",
			Description: "Analyze product usage data and build reporting for " +
				"revenue teams. Required: SQL, Python, dashboarding experience. " +
				"Familiarity with dbt and A/B testing is a plus.",
			Skills:    model.JSON(`["sql","python","tableau","excel"]`),
			Seniority: "mid",
		},
		{
			Title:    "Junior Frontend Developer",
			Company:  "Brightside Studio",
			Location: "Austin, TX",
			Description: "Join a small product team building customer-facing web " +
				"apps. Required: JavaScript, React, CSS. Recent graduates and " +
				"bootcamp alumni welcome.",
			Skills:    model.JSON(`["javascript","react","css","html"]`),
			Seniority: "entry",
		},
	}
}
