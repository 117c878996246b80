package cli

import (
	"github.com/Adda-Baaj/pride-client/pkg/pride"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// queryFlags binds the project list/count parameters to command flags.
type queryFlags struct {
	query          string
	show           int
	page           int
	sort           string
	order          string
	species        string
	ptms           string
	tissue         string
	disease        string
	title          string
	instrument     string
	experimentType string
	quantification string
	tag            string
}

func (q *queryFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&q.query, "query", "", "Free-text search")
	fs.IntVar(&q.show, "show", pride.DefaultShow, "Results per page")
	fs.IntVar(&q.page, "page", pride.DefaultPage, "Page number, starting at 0")
	fs.StringVar(&q.sort, "sort", "", "Field to sort by")
	fs.StringVar(&q.order, "order", pride.DefaultOrder, "Sort order (asc, desc)")
	fs.StringVar(&q.species, "species", "", "Species filter (e.g. NCBI taxonomy id)")
	fs.StringVar(&q.ptms, "ptms", "", "Post-translational modification filter")
	fs.StringVar(&q.tissue, "tissue", "", "Tissue filter")
	fs.StringVar(&q.disease, "disease", "", "Disease filter")
	fs.StringVar(&q.title, "title", "", "Title filter")
	fs.StringVar(&q.instrument, "instrument", "", "Instrument filter")
	fs.StringVar(&q.experimentType, "experiment-type", "", "Experiment type filter")
	fs.StringVar(&q.quantification, "quantification", "", "Quantification method filter")
	fs.StringVar(&q.tag, "project-tag", "", "Project tag filter")
}

// build starts from the default query and adds only the flags the user changed.
func (q *queryFlags) build(fs *pflag.FlagSet) *pride.ProjectQuery {
	pq := pride.NewProjectQuery()

	strs := []struct {
		flag string
		val  string
		dst  **string
	}{
		{"query", q.query, &pq.Query},
		{"sort", q.sort, &pq.Sort},
		{"order", q.order, &pq.Order},
		{"species", q.species, &pq.SpeciesFilter},
		{"ptms", q.ptms, &pq.PtmsFilter},
		{"tissue", q.tissue, &pq.TissueFilter},
		{"disease", q.disease, &pq.DiseaseFilter},
		{"title", q.title, &pq.TitleFilter},
		{"instrument", q.instrument, &pq.InstrumentFilter},
		{"experiment-type", q.experimentType, &pq.ExperimentTypeFilter},
		{"quantification", q.quantification, &pq.QuantificationFilter},
		{"project-tag", q.tag, &pq.ProjectTagFilter},
	}
	for _, s := range strs {
		if fs.Changed(s.flag) {
			*s.dst = pride.String(s.val)
		}
	}
	if fs.Changed("show") {
		pq.Show = pride.Int(q.show)
	}
	if fs.Changed("page") {
		pq.Page = pride.Int(q.page)
	}
	return pq
}

func newListCmd(opts *rootOptions) *cobra.Command {
	qf := &queryFlags{}
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List projects matching the given filters",
		Args:    cobra.NoArgs,
		Example: "  pride list --show 100 --species 9606",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := qf.build(cmd.Flags())
			return withClient(cmd, opts, func(c *pride.Client) error {
				res, err := c.ProjectList(contextOf(cmd), q)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, res)
			})
		},
	}
	qf.register(cmd.Flags())
	return cmd
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	qf := &queryFlags{}
	cmd := &cobra.Command{
		Use:     "count",
		Short:   "Count projects matching the given filters",
		Args:    cobra.NoArgs,
		Example: "  pride count --tissue liver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := qf.build(cmd.Flags())
			return withClient(cmd, opts, func(c *pride.Client) error {
				res, err := c.ProjectCount(contextOf(cmd), q)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.output, res)
			})
		},
	}
	qf.register(cmd.Flags())
	return cmd
}
