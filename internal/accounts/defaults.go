package accounts

import "github.com/cleared-dev/chartseed/internal/model"

// DefaultChart returns the built-in chart of accounts, a condensed French
// plan comptable général. Single-digit numbers are classes.
func DefaultChart() []model.Account {
	return []model.Account{
		class("1", "Comptes de capitaux", model.AccountTypeEquity),
		group("10", "Capital et réserves", model.AccountTypeEquity),
		leaf("101", "Capital", model.AccountTypeEquity, true),
		leaf("106", "Réserves", model.AccountTypeEquity, false),
		group("12", "Résultat de l'exercice", model.AccountTypeEquity),
		leaf("120", "Résultat de l'exercice (bénéfice)", model.AccountTypeEquity, true),
		leaf("129", "Résultat de l'exercice (perte)", model.AccountTypeEquity, true),
		group("16", "Emprunts et dettes assimilées", model.AccountTypeLiability),
		leaf("164", "Emprunts auprès des établissements de crédit", model.AccountTypeLiability, false),

		class("2", "Comptes d'immobilisations", model.AccountTypeAsset),
		group("21", "Immobilisations corporelles", model.AccountTypeAsset),
		leaf("215", "Installations techniques, matériel et outillage", model.AccountTypeAsset, false),
		leaf("218", "Autres immobilisations corporelles", model.AccountTypeAsset, false),
		group("28", "Amortissements des immobilisations", model.AccountTypeAsset),
		leaf("281", "Amortissements des immobilisations corporelles", model.AccountTypeAsset, false),

		class("3", "Comptes de stocks et en-cours", model.AccountTypeAsset),
		leaf("37", "Stocks de marchandises", model.AccountTypeAsset, false),

		class("4", "Comptes de tiers", model.AccountTypeLiability),
		group("40", "Fournisseurs et comptes rattachés", model.AccountTypeLiability),
		leaf("401", "Fournisseurs", model.AccountTypeLiability, true),
		group("41", "Clients et comptes rattachés", model.AccountTypeAsset),
		leaf("411", "Clients", model.AccountTypeAsset, true),
		group("44", "État et autres collectivités publiques", model.AccountTypeLiability),
		leaf("445", "État - Taxes sur le chiffre d'affaires", model.AccountTypeLiability, true),
		group("46", "Débiteurs divers et créditeurs divers", model.AccountTypeAsset),
		leaf("467", "Autres comptes débiteurs ou créditeurs", model.AccountTypeAsset, false),

		class("5", "Comptes financiers", model.AccountTypeAsset),
		group("51", "Banques, établissements financiers et assimilés", model.AccountTypeAsset),
		leaf("512", "Banques", model.AccountTypeAsset, true),
		leaf("53", "Caisse", model.AccountTypeAsset, false),

		class("6", "Comptes de charges", model.AccountTypeExpense),
		group("60", "Achats", model.AccountTypeExpense),
		leaf("601", "Achats stockés - Matières premières", model.AccountTypeExpense, false),
		leaf("607", "Achats de marchandises", model.AccountTypeExpense, true),
		group("61", "Services extérieurs", model.AccountTypeExpense),
		leaf("613", "Locations", model.AccountTypeExpense, false),
		group("62", "Autres services extérieurs", model.AccountTypeExpense),
		leaf("622", "Rémunérations d'intermédiaires et honoraires", model.AccountTypeExpense, false),
		leaf("626", "Frais postaux et de télécommunications", model.AccountTypeExpense, false),
		leaf("63", "Impôts, taxes et versements assimilés", model.AccountTypeExpense, false),
		group("64", "Charges de personnel", model.AccountTypeExpense),
		leaf("641", "Rémunérations du personnel", model.AccountTypeExpense, false),
		leaf("645", "Charges de sécurité sociale et de prévoyance", model.AccountTypeExpense, false),
		leaf("66", "Charges financières", model.AccountTypeExpense, false),
		group("68", "Dotations aux amortissements et aux provisions", model.AccountTypeExpense),
		leaf("681", "Dotations aux amortissements - Charges d'exploitation", model.AccountTypeExpense, false),

		class("7", "Comptes de produits", model.AccountTypeRevenue),
		group("70", "Ventes de produits fabriqués, prestations de services, marchandises", model.AccountTypeRevenue),
		leaf("706", "Prestations de services", model.AccountTypeRevenue, true),
		leaf("707", "Ventes de marchandises", model.AccountTypeRevenue, false),
		leaf("74", "Subventions d'exploitation", model.AccountTypeRevenue, false),
		leaf("76", "Produits financiers", model.AccountTypeRevenue, false),

		class("8", "Comptes spéciaux", model.AccountTypeSpecial),
		leaf("80", "Engagements", model.AccountTypeSpecial, false),
	}
}

func class(number, label string, t model.AccountType) model.Account {
	return model.Account{Number: number, Label: label, Type: t, IsClass: true}
}

func group(number, label string, t model.AccountType) model.Account {
	return model.Account{Number: number, Label: label, Type: t}
}

func leaf(number, label string, t model.AccountType, mandatory bool) model.Account {
	return model.Account{Number: number, Label: label, Type: t, IsMandatory: mandatory, IsSelectable: true}
}
