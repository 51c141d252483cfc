package http

// Route names for the repository manager's staging API. Clients look
// routes up by name rather than building paths by hand, so the paths
// live in exactly one place (NewAPIRouter).
const (
	Status              = "Status"
	Profiles            = "Profiles"
	ProfileRepositories = "ProfileRepositories"
	Repository          = "Repository"
	RepositoryActivity  = "RepositoryActivity"

	// The bulk commands accept a set of repository ids and return as
	// soon as the server has queued the transition.
	BulkClose   = "BulkClose"
	BulkPromote = "BulkPromote"
	BulkDrop    = "BulkDrop"
)
