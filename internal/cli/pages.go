package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soyeahso/reviewdesk/internal/pagerange"
	"github.com/spf13/cobra"
)

func newPagesCmd() *cobra.Command {
	var total int

	cmd := &cobra.Command{
		Use:   "pages <expr>",
		Short: "Show which pages a range expression selects",
		Example: "  reviewdesk pages '1-3, 5' --total 10\n" +
			"  reviewdesk pages '5,2-3,2,x' --total 7",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if total < 1 {
				return fmt.Errorf("--total must be at least 1")
			}
			indices := pagerange.Parse(args[0], total)
			if len(indices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(no pages selected)")
				return nil
			}
			nums := make([]string, len(indices))
			for i, idx := range indices {
				nums[i] = strconv.Itoa(idx + 1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(nums, " "))
			return nil
		},
	}

	cmd.Flags().IntVar(&total, "total", 30, "number of pages in the document")
	return cmd
}
