package dto

type ImportInput struct {
	Path string
}

type ImportOutput struct {
	SettingsApplied    bool
	GoalsDataApplied   bool
	SnapshotsApplied   bool
	CompletionsMerged  int
	SectionsConsidered int
}

type ExportInput struct {
	Path string
}
