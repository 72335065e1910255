package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ebay-scraper/models"
)

// resolveParams builds the parameter set for one search. Flags and positional
// arguments win; anything they leave unset is collected interactively. The
// returned value is complete and never mutated afterwards.
func resolveParams(cmd *cobra.Command, args []string, reader *bufio.Reader) (models.SearchParameters, error) {
	out := cmd.OutOrStdout()

	keywords := args
	if len(keywords) == 0 {
		line, err := prompt(reader, out, "Enter keywords (separated by spaces): ")
		if err != nil {
			return models.SearchParameters{}, err
		}
		keywords = strings.Fields(line)
	}

	condition := flagCondition
	if !cmd.Flags().Changed("condition") {
		line, err := prompt(reader, out, "Enter the item condition (new, used, refurbished, or any) [any]: ")
		if err != nil {
			return models.SearchParameters{}, err
		}
		condition = line
	}
	if condition == "" {
		condition = "any"
	}

	minPrice := flagMinPrice
	if !cmd.Flags().Changed("min-price") {
		line, err := prompt(reader, out, "Enter the minimum price (optional): ")
		if err != nil {
			return models.SearchParameters{}, err
		}
		minPrice = line
	}

	maxPrice := flagMaxPrice
	if !cmd.Flags().Changed("max-price") {
		line, err := prompt(reader, out, "Enter the maximum price (optional): ")
		if err != nil {
			return models.SearchParameters{}, err
		}
		maxPrice = line
	}

	pages := flagPages
	if !cmd.Flags().Changed("pages") {
		line, err := prompt(reader, out, "Enter the number of pages to search (default 1): ")
		if err != nil {
			return models.SearchParameters{}, err
		}
		pages = parsePages(line)
	}

	return models.SearchParameters{
		Keywords:  keywords,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Condition: condition,
		Pages:     pages,
	}, nil
}

// prompt writes the question and returns the trimmed answer line. A final
// line without a trailing newline still counts as an answer.
func prompt(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePages maps the interactive answer to a usable page count. Blank or
// unusable answers fall back to the advertised default of 1.
func parsePages(answer string) int {
	if answer == "" {
		return 1
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// promptYes asks a yes/no question; only "y" (any casing) continues.
func promptYes(reader *bufio.Reader, out io.Writer, question string) bool {
	answer, err := prompt(reader, out, question)
	if err != nil {
		return false
	}
	return strings.ToLower(answer) == "y"
}
