package domain

// brokerNames maps exchange broker codes to display names. Resolution is a
// read-side concern: the capture path persists raw codes only.
var brokerNames = map[string]string{
	"3":     "XP INVESTIMENTOS",
	"4":     "ALFA CCVM S/A",
	"8":     "UBS BRASIL CCTVM S/A",
	"13":    "MERRILL LYNCH S/A CTVM",
	"15":    "GUIDE INVESTIMENTOS SA CORRETORA DE VALORES",
	"16":    "J.P. MORGAN CCVM S/A",
	"18":    "BOCOM BBM CCVM S/A",
	"21":    "VOTORANTIM ASSET MANAGEMENT DTVM LTDA",
	"23":    "NECTON INVESTIMENTOS S.A. CVMC",
	"27":    "SANTANDER CCVM S/A",
	"39":    "AGORA CTVM S/A",
	"41":    "ING CCT S/A",
	"45":    "CREDIT SUISSE (BRASIL) S.A. CTVM",
	"59":    "SAFRA CORRETORA DE VALORES E CAMBIO LTDA",
	"63":    "NOVINVEST CVM LTDA",
	"72":    "BRADESCO S/A CTVM",
	"77":    "CITIGROUP GLOBAL MARKETS BRASIL CCTVM S/A",
	"85":    "BTG PACTUAL CTVM S/A",
	"88":    "CM CAPITAL MARKETS CCTVM LTDA",
	"90":    "EASYNVEST - TITULO CV S/A",
	"92":    "RENASCENCA DTVM LTDA",
	"93":    "NOVA FUTURA CTVM LTDA",
	"106":   "MERCANTIL DO BRASIL C. S/A CTVM",
	"107":   "TERRA INVESTIMENTOS DTVM LTDA",
	"120":   "GENIAL INSTITUCIONAL CCTVM S/A",
	"122":   "BGC LIQUIDEZ DTVM LTDA",
	"127":   "TULLETT PREBON BRASIL CVC LTDA.",
	"129":   "PLANNER CORRETORA DE VALORES S/A",
	"147":   "ATIVA INVESTIMENTOS S/A CTCV",
	"174":   "ELITE CCVM LTDA",
	"190":   "WARREN CVMC LTDA",
	"226":   "AMARIL FRANKLIN CTV LTDA",
	"252":   "BANCO ITAU BBA S/A",
	"308":   "CLEAR CORRETORA",
	"386":   "RICO INVESTIMENTOS",
	"2446":  "ITAU CV S/A",
	"4090":  "TORO CTVM LTDA",
	"50935": "BANCO XP S.A",
}

// BrokerName resolves a broker code to a display name, falling back to the
// raw code when unknown.
func BrokerName(code string) string {
	if name, ok := brokerNames[code]; ok {
		return name
	}
	return code
}
