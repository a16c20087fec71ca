package domain

// Column headers shared by the state export, the survey export and the
// combined table. Header text is kept exactly as it appears in the source
// workbooks, including the misspelled "Feline list in care".
const (
	ColShelterName       = "Shelter Name"
	ColAnnotation        = "Shelter Name Annotation"
	ColState             = "State"
	ColDataYear          = "Data Year"
	ColReportPeriodStart = "Report Period Start"
	ColReportPeriodEnd   = "Report Period End"

	ColCanineStray           = "Canine stray at large"
	ColCanineRelinquished    = "Canine relinquished by owner"
	ColCanineOwnerEuthIntake = "Canine intake owner intended euthanasia"
	ColCanineTransferredIn   = "Canine transferred in from agency"
	ColCanineOtherIntakes    = "Canine other intakes"
	ColCanineTotalGross      = "Canine Total Intake Gross"
	ColCanineTotalNet        = "Canine Total Intake Net"

	ColFelineStray           = "Feline stray at large"
	ColFelineRelinquished    = "Feline relinquished by owner"
	ColFelineOwnerEuthIntake = "Feline intake owner intended euthanasia"
	ColFelineTransferredIn   = "Feline transferred in from agency"
	ColFelineOtherIntakes    = "Feline other intakes"
	ColFelineTotalGross      = "Feline Total Intake Gross"
	ColFelineTotalNet        = "Feline Total Intake Net"

	ColTotalIntakeGross        = "Total Intake Gross"
	ColUndesignatedIntakeGross = "Undesignated Species Total Intake Gross"

	// AnnotationRemoved marks a shelter row that is a duplicate or was
	// relocated; such rows are left out of every aggregate.
	AnnotationRemoved = "R"

	// DefaultState is assigned to combined rows that carry no state, which
	// are the rows that only exist in the Georgia state export.
	DefaultState = "GA"
)

// Species names a group of per-species columns.
type Species string

const (
	SpeciesCanine Species = "Canine"
	SpeciesFeline Species = "Feline"
)

// GrossIntakeColumns are summed for the all-species gross intake chart.
var GrossIntakeColumns = []string{
	ColCanineStray, ColCanineRelinquished, ColCanineOwnerEuthIntake,
	ColCanineTransferredIn, ColCanineOtherIntakes,
	ColFelineStray, ColFelineRelinquished, ColFelineOwnerEuthIntake,
	ColFelineTransferredIn, ColFelineOtherIntakes,
	ColTotalIntakeGross,
}

// SpeciesGrossColumns returns the gross intake columns for one species.
func SpeciesGrossColumns(s Species) []string {
	p := string(s)
	return []string{
		p + " stray at large",
		p + " relinquished by owner",
		p + " intake owner intended euthanasia",
		p + " transferred in from agency",
		p + " other intakes",
		p + " Total Intake Gross",
	}
}

// SpeciesNetColumns returns the net intake columns for one species.
func SpeciesNetColumns(s Species) []string {
	p := string(s)
	return []string{
		p + " stray at large",
		p + " relinquished by owner",
		p + " intake owner intended euthanasia",
		p + " Total Intake Net",
	}
}

// ShelterAnimalColumns are summed per row to rank shelters by volume.
var ShelterAnimalColumns = []string{
	ColCanineStray, ColCanineRelinquished, ColCanineOwnerEuthIntake,
	ColCanineTransferredIn, ColCanineOtherIntakes, ColCanineTotalGross,
	ColFelineStray, ColFelineRelinquished, ColFelineOwnerEuthIntake,
	ColFelineTransferredIn, ColFelineOtherIntakes, ColFelineTotalGross,
}

// CanineOutcomeColumns lists the canine outcome counts in display order.
var CanineOutcomeColumns = []string{
	"Canine adoption",
	"Canine returned to owner",
	"Canine transferred to another agency",
	"Canine returned to field",
	"Canine other live outcome",
	"Canine died in care",
	"Canine lost in care",
	"Canine shelter euthanasia",
	"Canine owner intended euthanasia",
}

// FelineOutcomeColumns lists the feline outcome counts in display order.
var FelineOutcomeColumns = []string{
	"Feline adoption",
	"Feline returned to owner",
	"Feline transferred to another agency",
	"Feline returned to field",
	"Feline other live outcome",
	"Feline died in care",
	"Feline list in care",
	"Feline shelter euthanasia",
	"Feline owner intended euthanasia",
}

// OutcomeColumns returns the outcome columns for one species.
func OutcomeColumns(s Species) []string {
	if s == SpeciesFeline {
		return FelineOutcomeColumns
	}
	return CanineOutcomeColumns
}
