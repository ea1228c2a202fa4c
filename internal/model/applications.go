package model

// Applications is the fixed catalogue of applications access can be requested for,
// in the order the form presents them.
var Applications = []string{
	"VSLBank",
	"Portal ValeShop",
	"Sistema Interno/Forms",
	"App Benefícios",
	"Frotas",
	"Sankya",
	"Autorizador",
}

// IsKnownApplication reports whether name is in the catalogue.
// Matching is exact: no trimming and no case folding.
func IsKnownApplication(name string) bool {
	for _, app := range Applications {
		if app == name {
			return true
		}
	}
	return false
}
