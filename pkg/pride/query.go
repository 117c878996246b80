package pride

import (
	"strconv"

	"github.com/Adda-Baaj/pride-client/pkg/rest"
)

// Query parameter names accepted by project/list and project/count.
const (
	ParamQuery                = "query"
	ParamShow                 = "show"
	ParamPage                 = "page"
	ParamSort                 = "sort"
	ParamOrder                = "order"
	ParamSpeciesFilter        = "speciesFilter"
	ParamPtmsFilter           = "ptmsFilter"
	ParamTissueFilter         = "tissueFilter"
	ParamDiseaseFilter        = "diseaseFilter"
	ParamTitleFilter          = "titleFilter"
	ParamInstrumentFilter     = "instrumentFilter"
	ParamExperimentTypeFilter = "experimentTypeFilter"
	ParamQuantificationFilter = "quantificationfilter"
	ParamProjectTagFilter     = "projectTagFilter"
)

const (
	DefaultShow  = 10
	DefaultPage  = 0
	DefaultOrder = "desc"
)

// ProjectQuery holds the parameters of a project list or count request.
// A nil field was not supplied and is left out of the request.
type ProjectQuery struct {
	Query                *string
	Show                 *int
	Page                 *int
	Sort                 *string
	Order                *string
	SpeciesFilter        *string
	PtmsFilter           *string
	TissueFilter         *string
	DiseaseFilter        *string
	TitleFilter          *string
	InstrumentFilter     *string
	ExperimentTypeFilter *string
	QuantificationFilter *string
	ProjectTagFilter     *string
}

// NewProjectQuery returns a query carrying the defaults every list or count
// call sends: show=10, page=0, order=desc.
func NewProjectQuery() *ProjectQuery {
	return &ProjectQuery{
		Show:  Int(DefaultShow),
		Page:  Int(DefaultPage),
		Order: String(DefaultOrder),
	}
}

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

type queryField struct {
	key string
	str *string
	num *int
}

// fields lists every parameter in wire order.
func (q *ProjectQuery) fields() []queryField {
	return []queryField{
		{key: ParamQuery, str: q.Query},
		{key: ParamShow, num: q.Show},
		{key: ParamPage, num: q.Page},
		{key: ParamSort, str: q.Sort},
		{key: ParamOrder, str: q.Order},
		{key: ParamSpeciesFilter, str: q.SpeciesFilter},
		{key: ParamPtmsFilter, str: q.PtmsFilter},
		{key: ParamTissueFilter, str: q.TissueFilter},
		{key: ParamDiseaseFilter, str: q.DiseaseFilter},
		{key: ParamTitleFilter, str: q.TitleFilter},
		{key: ParamInstrumentFilter, str: q.InstrumentFilter},
		{key: ParamExperimentTypeFilter, str: q.ExperimentTypeFilter},
		{key: ParamQuantificationFilter, str: q.QuantificationFilter},
		{key: ParamProjectTagFilter, str: q.ProjectTagFilter},
	}
}

// Params serializes exactly the supplied parameters.
func (q *ProjectQuery) Params() rest.Params {
	params := rest.Params{}
	if q == nil {
		return params
	}
	for _, f := range q.fields() {
		switch {
		case f.str != nil:
			params[f.key] = *f.str
		case f.num != nil:
			params[f.key] = strconv.Itoa(*f.num)
		}
	}
	return params
}

// Keys returns the supplied parameter names in wire order.
func (q *ProjectQuery) Keys() []string {
	if q == nil {
		return nil
	}
	var keys []string
	for _, f := range q.fields() {
		if f.str != nil || f.num != nil {
			keys = append(keys, f.key)
		}
	}
	return keys
}
