package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/marbleseoul/server/format"
	"github.com/marbleseoul/server/market"
)

func rankingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "District price ranking for the latest month",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := store.Snapshot()
			if snap == nil {
				return fmt.Errorf("no market data in %s", marketDir)
			}

			ranking := snap.Ranking
			if limit > 0 && limit < len(ranking) {
				ranking = ranking[:limit]
			}

			fmt.Printf("서울시 아파트 매매가 랭킹 (%d년 %d월, 국평 84m²)\n\n",
				snap.Month/100, snap.Month%100)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"순위", "자치구", "평균 매매가", "전국", "서울"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)

			for _, r := range ranking {
				table.Append([]string{
					rankCell(r.Rank),
					r.Gugun,
					format.PriceEok(r.Price84),
					r.NationalLabel,
					r.SeoulLabel,
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the top N districts")
	return cmd
}

// rankCell colors the top quintile green and the bottom red.
func rankCell(rank int) string {
	s := strconv.Itoa(rank)
	switch {
	case rank <= 5:
		return color.Green.Sprint(s)
	case rank > 20:
		return color.Red.Sprint(s)
	}
	return s
}

func quintilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quintiles",
		Short: "Price quintile buckets of the ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := store.Snapshot()
			if snap == nil {
				return fmt.Errorf("no market data in %s", marketDir)
			}

			for _, q := range snap.Quintiles {
				header := fmt.Sprintf(" %s (%s) ", q.Label, q.Description)
				fmt.Println(color.HEX(q.Color).Sprint(header))
				fmt.Printf("  가격 범위: %s\n", q.PriceRange)

				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"순위", "자치구", "평균 매매가"})
				table.SetAutoWrapText(false)
				table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
				table.SetAlignment(tablewriter.ALIGN_LEFT)
				table.SetBorder(false)

				for _, name := range q.Districts {
					if r, ok := market.FindRanked(snap.Ranking, name); ok {
						table.Append([]string{
							strconv.Itoa(r.Rank),
							r.Gugun,
							format.PriceEok(r.Price84),
						})
					}
				}
				table.Render()
				fmt.Println()
			}
			return nil
		},
	}
}
