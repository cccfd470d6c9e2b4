package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/marbleseoul/server/format"
	"github.com/marbleseoul/server/geo"
	"github.com/marbleseoul/server/market"
)

func districtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "district <name>",
		Short: "Detail view for one district, e.g. rankview district 강남구",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !geo.IsDistrict(name) {
				return fmt.Errorf("unknown Seoul district %q", name)
			}

			snap := store.Snapshot()
			if snap == nil {
				return fmt.Errorf("no market data in %s", marketDir)
			}

			info, ok := market.DistrictDetail(snap.Sales, name)
			if !ok {
				return fmt.Errorf("no price data for %s", name)
			}

			fmt.Println(color.New(color.Bold).Sprint(name))
			if r, ok := market.FindRanked(snap.Ranking, name); ok {
				fmt.Printf("  서울시 순위: %d위 / %d\n", r.Rank, len(snap.Ranking))
				fmt.Printf("  전국 %s, 서울 %s\n", r.NationalLabel, r.SeoulLabel)
			}
			fmt.Printf("  평균 매매가: %s (최고 %s, 최저 %s)\n",
				format.PriceEok(info.AvgPrice), format.PriceEok(info.MaxPrice), format.PriceEok(info.MinPrice))
			fmt.Printf("  단지 %d개, 총 %s세대, 평균 준공 %.0f년\n\n",
				info.ComplexCount, format.GroupDigits(info.TotalHouseholds), info.AvgBuildYear)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"단지", "평균 매매가", "준공", "세대수"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)

			for _, c := range info.TopComplexes {
				table.Append([]string{
					c.AptName,
					format.PriceEok(c.AvgPrice),
					strconv.Itoa(c.BuildYear),
					format.GroupDigits(c.Households),
				})
			}
			table.Render()
			return nil
		},
	}
}
