package domain

// Localized display labels for actions and entity types. The platform serves
// Romanian businesses, so every action carries an English and a Romanian
// label; reports and exports show both.

var actionLabels = map[Action]string{
	ActionCreate:   "Create",
	ActionRead:     "Read",
	ActionUpdate:   "Update",
	ActionDelete:   "Delete",
	ActionLogin:    "Login",
	ActionLogout:   "Logout",
	ActionExport:   "Export",
	ActionImport:   "Import",
	ActionApprove:  "Approve",
	ActionReject:   "Reject",
	ActionSubmit:   "Submit",
	ActionCancel:   "Cancel",
	ActionArchive:  "Archive",
	ActionRestore:  "Restore",
	ActionPrint:    "Print",
	ActionEmail:    "Email",
	ActionDownload: "Download",
}

var actionLabelsRo = map[Action]string{
	ActionCreate:   "Creare",
	ActionRead:     "Citire",
	ActionUpdate:   "Actualizare",
	ActionDelete:   "Ștergere",
	ActionLogin:    "Autentificare",
	ActionLogout:   "Deconectare",
	ActionExport:   "Export",
	ActionImport:   "Import",
	ActionApprove:  "Aprobare",
	ActionReject:   "Respingere",
	ActionSubmit:   "Depunere",
	ActionCancel:   "Anulare",
	ActionArchive:  "Arhivare",
	ActionRestore:  "Restaurare",
	ActionPrint:    "Tipărire",
	ActionEmail:    "Trimitere Email",
	ActionDownload: "Descărcare",
}

var entityTypeLabels = map[EntityType]string{
	EntityInvoice:     "Invoice",
	EntityCustomer:    "Customer",
	EntityEmployee:    "Employee",
	EntityUser:        "User",
	EntityDocument:    "Document",
	EntityTransaction: "Transaction",
	EntityReport:      "Report",
	EntityDeclaration: "Declaration",
	EntityContract:    "Contract",
	EntityPayment:     "Payment",
	EntityWorkflow:    "Workflow",
	EntitySetting:     "Setting",
	EntityRole:        "Role",
	EntityPermission:  "Permission",
	EntityProduct:     "Product",
}

var entityTypeLabelsRo = map[EntityType]string{
	EntityInvoice:     "Factură",
	EntityCustomer:    "Client",
	EntityEmployee:    "Angajat",
	EntityUser:        "Utilizator",
	EntityDocument:    "Document",
	EntityTransaction: "Tranzacție",
	EntityReport:      "Raport",
	EntityDeclaration: "Declarație",
	EntityContract:    "Contract",
	EntityPayment:     "Plată",
	EntityWorkflow:    "Flux de lucru",
	EntitySetting:     "Setare",
	EntityRole:        "Rol",
	EntityPermission:  "Permisiune",
	EntityProduct:     "Produs",
}

// Label returns the English display label for the action.
func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

// LabelRo returns the Romanian display label for the action.
func (a Action) LabelRo() string {
	if l, ok := actionLabelsRo[a]; ok {
		return l
	}
	return string(a)
}

// Label returns the English display label for the entity type.
func (e EntityType) Label() string {
	if l, ok := entityTypeLabels[e]; ok {
		return l
	}
	return string(e)
}

// LabelRo returns the Romanian display label for the entity type.
func (e EntityType) LabelRo() string {
	if l, ok := entityTypeLabelsRo[e]; ok {
		return l
	}
	return string(e)
}
