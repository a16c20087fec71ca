package charts

// File names of the charts written by a run.
const (
	FileTotalIntakeGross          = "Total_Intake_Gross.png"
	FileTotalIntakeGrossBySpecies = "Total_Intake_Gross_BY_Species.png"
	FileTotalIntakeNet            = "Total_Intake_Net.png"
	FileTopShelters               = "Top_10_Shelters.png"
	FileTopSheltersByCount        = "Total_10_Shelters_By_Count.png"
	FileCanineOutcomes            = "Canine_Outcomes.png"
	FileFelineOutcomes            = "Feline_Outcomes.png"
	FileUndesignatedIntakeGross   = "Total_Intake_Gross_Undesignated.png"
)

// AllFiles lists every chart file in the order the pipeline writes them.
var AllFiles = []string{
	FileTotalIntakeGross,
	FileTotalIntakeGrossBySpecies,
	FileTotalIntakeNet,
	FileTopShelters,
	FileTopSheltersByCount,
	FileCanineOutcomes,
	FileFelineOutcomes,
	FileUndesignatedIntakeGross,
}
