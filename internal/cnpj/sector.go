package cnpj

// sectorByPrefix maps the two leading CNAE digits to a sector label.
var sectorByPrefix = map[string]string{
	"69": "Atividades jurídicas, contábeis e consultorias",
	"70": "Atividades de sedes de empresas e consultoria",
	"71": "Atividades de arquitetura e engenharia",
	"72": "Pesquisa e desenvolvimento científico",
	"73": "Publicidade e pesquisa de mercado",
	"74": "Outras atividades profissionais",
	"75": "Atividades veterinárias",
	"10": "Fabricação de produtos alimentícios",
	"25": "Fabricação de produtos de metal",
	"47": "Comércio varejista",
	"46": "Comércio atacadista",
	"49": "Transporte terrestre",
	"52": "Armazenamento e atividades auxiliares",
	"55": "Alojamento",
	"56": "Alimentação",
	"62": "Atividades de serviços de tecnologia",
	"63": "Atividades de prestação de serviços",
	"68": "Atividades imobiliárias",
	"85": "Educação",
	"86": "Atividades de atenção à saúde humana",
	"87": "Atividades de atenção à saúde residencial",
}

// DefaultSector is returned for activity codes outside the known map.
const DefaultSector = "Outros setores"

// SectorFromCNAE maps an activity code to its sector label using the
// two-digit prefix.
func SectorFromCNAE(code string) string {
	if len(code) < 2 {
		return DefaultSector
	}
	if sector, ok := sectorByPrefix[code[:2]]; ok {
		return sector
	}
	return DefaultSector
}
