package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/whatsthemove/moveplan/internal/common"
	"github.com/whatsthemove/moveplan/internal/config"
	"github.com/whatsthemove/moveplan/internal/jobs"
	"github.com/whatsthemove/moveplan/internal/model"
)

func inspectJobCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect-job <url>",
		Short: "Fetch and classify a job posting URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimSpace(args[0])
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return common.NewUserError("job URL must start with http:// or https://", nil)
			}

			cfg := config.Load()
			inspector, err := jobs.NewInspector(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
			if err != nil {
				return err
			}

			posting, err := inspector.Inspect(cmd.Context(), url)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(posting)
			}

			printPosting(posting)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw classification JSON")
	return cmd
}

func printPosting(p *model.JobPosting) {
	fmt.Println("================= JOB ANALYSIS RESULT =================")
	fmt.Println()
	fmt.Printf("Valid job posting?  %v\n", p.IsValidJobPosting)
	fmt.Printf("Reason:             %s\n", p.ValidityReason)
	fmt.Println()

	fmt.Println("Basic Info")
	fmt.Println("----------")
	fmt.Printf("Job Title:          %s\n", orUnknown(p.JobTitle))
	fmt.Printf("Company:            %s\n", orUnknown(p.CompanyName))
	fmt.Printf("Location:           %s\n", orUnknown(p.Location))
	fmt.Printf("Work Model:         %s\n", p.WorkModel)
	fmt.Printf("Employment Type:    %s\n", p.EmploymentType)
	fmt.Printf("Deadline:           %s\n", orUnknown(p.ApplicationDeadline))
	fmt.Printf("Job URL:            %s\n", p.JobURL)
	fmt.Println()

	fmt.Println("Compensation")
	fmt.Println("------------")
	fmt.Printf("Currency:           %s\n", orUnknown(p.SalaryCurrency))
	fmt.Printf("Salary Interval:    %s\n", p.SalaryInterval)
	fmt.Printf("Salary Min:         %s\n", orUnknownFloat(p.SalaryMin))
	fmt.Printf("Salary Max:         %s\n", orUnknownFloat(p.SalaryMax))
	fmt.Println()

	if len(p.RedFlags) > 0 {
		fmt.Println("Red Flags")
		fmt.Println("---------")
		for _, rf := range p.RedFlags {
			fmt.Printf("- %s\n", rf)
		}
		fmt.Println()
	}

	if p.QuickSummary != "" {
		fmt.Println("Summary")
		fmt.Println("-------")
		fmt.Println(p.QuickSummary)
		fmt.Println()
	}

	summary := jobs.Summarize(p)
	fmt.Println("Move Summary")
	fmt.Println("------------")
	fmt.Printf("Destination:        %s\n", summary.MoveToDestination)
	fmt.Printf("Start:              %s\n", summary.StartMonth)
	fmt.Printf("End:                %s\n", summary.EndMonth)
	fmt.Printf("Duration (months):  %s\n", summary.DurationMonths)
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return "Unknown"
	}
	return *s
}

func orUnknownFloat(f *float64) string {
	if f == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%g", *f)
}
