package importer

import (
	"slices"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Kind - тип импортируемых записей
type Kind string

const (
	KindPosition      Kind = "position"
	KindTasraPosition Kind = "tasra_position"
	KindPersonnel     Kind = "personnel"
)

type fieldType int

const (
	textField fieldType = iota
	dateField
	boolField
)

// Канонические имена полей
const (
	fDepartment            = "department"
	fUnit                  = "unit"
	fName                  = "name"
	fDutyLocation          = "dutyLocation"
	fStatus                = "status"
	fOriginalTitle         = "originalTitle"
	fAssigneeRegistry      = "assignedPersonnelRegistryNumber"
	fManagerRegistry       = "reportsToRegistryNumber"
	fStartDate             = "startDate"
	fActingAuthority       = "actingAuthority"
	fReceivesProxyPay      = "receivesProxyPay"
	fHasDelegatedAuthority = "hasDelegatedAuthority"
	fFirstName             = "firstName"
	fLastName              = "lastName"
	fUnvan                 = "unvan"
	fRegistryNumber        = "registryNumber"
	fEmail                 = "email"
	fPhone                 = "phone"
	fPhotoURL              = "photoUrl"
	fDateOfBirth           = "dateOfBirth"
)

type field struct {
	name     string
	label    string
	typ      fieldType
	synonyms []string
}

// schema сопоставляет написания заголовков каноническим полям
type schema struct {
	fields []field
	byFold map[string]int
	keys   []string
}

// minFuzzyLength - заголовки короче не сопоставляются нечётко
const minFuzzyLength = 5

func newSchema(fields ...field) *schema {
	s := &schema{fields: fields, byFold: make(map[string]int)}
	for i, f := range fields {
		for _, spelling := range append([]string{f.name, f.label}, f.synonyms...) {
			key := fold(spelling)
			if _, dup := s.byFold[key]; !dup {
				s.byFold[key] = i
				s.keys = append(s.keys, key)
			}
		}
	}
	slices.Sort(s.keys)
	return s
}

// match ищет поле по заголовку: сначала точно, затем по расстоянию Левенштейна ≤ 1,
// если ближайший синоним единственный.
func (s *schema) match(header string) (*field, bool) {
	key := fold(header)
	if key == "" {
		return nil, false
	}
	if i, ok := s.byFold[key]; ok {
		return &s.fields[i], true
	}
	if len(key) < minFuzzyLength {
		return nil, false
	}

	hits := make(map[int]struct{})
	best := -1
	for _, candidate := range s.keys {
		if len(candidate) < minFuzzyLength || fuzzy.LevenshteinDistance(key, candidate) > 1 {
			continue
		}
		best = s.byFold[candidate]
		hits[best] = struct{}{}
	}
	if len(hits) != 1 {
		return nil, false
	}
	return &s.fields[best], true
}

// label возвращает отображаемое имя канонического поля
func (s *schema) label(name string) string {
	for _, f := range s.fields {
		if f.name == name {
			return f.label
		}
	}
	return name
}

var (
	statusField        = field{name: fStatus, label: "Durum", synonyms: []string{"Durumu", "Görev Durumu", "Kadro Durumu", "Atama Durumu"}}
	originalTitleField = field{name: fOriginalTitle, label: "Asıl Unvan", synonyms: []string{"Asıl Unvanı", "Orijinal Unvan", "Kendi Unvanı"}}
	dutyLocationField  = field{name: fDutyLocation, label: "Görev Yeri", synonyms: []string{"Görev Yeri Adı", "Lokasyon", "Çalıştığı Yer", "Alt Birim"}}
	assigneeField      = field{name: fAssigneeRegistry, label: "Personel Sicil No", synonyms: []string{"Sicil No", "Sicil Numarası", "Sicil", "Personel Sicil", "Atanan Sicil No"}}
	startDateField     = field{name: fStartDate, label: "Başlama Tarihi", typ: dateField, synonyms: []string{"Göreve Başlama Tarihi", "Başlangıç Tarihi", "Atama Tarihi"}}
	positionNameField  = field{name: fName, label: "Pozisyon", synonyms: []string{"Pozisyon Adı", "Görev", "Görev Unvanı", "Kadro Unvanı", "Kadro"}}
)

var positionSchema = newSchema(
	field{name: fDepartment, label: "Birim", synonyms: []string{"Birimi", "Birim Adı", "Daire", "Departman", "Başkanlık"}},
	positionNameField,
	dutyLocationField,
	statusField,
	originalTitleField,
	assigneeField,
	field{name: fManagerRegistry, label: "Yönetici Sicil No", synonyms: []string{"Bağlı Olduğu Sicil No", "Amir Sicil No", "Üst Sicil No", "Yönetici Sicil"}},
	startDateField,
)

var tasraSchema = newSchema(
	field{name: fUnit, label: "Birim", synonyms: []string{"Birimi", "Birim Adı", "Teşkilat", "Müdürlük", "İl Müdürlüğü"}},
	positionNameField,
	dutyLocationField,
	statusField,
	originalTitleField,
	field{name: fActingAuthority, label: "Görevlendiren Makam", synonyms: []string{"Makam", "Onay Makamı", "Görevlendirme Makamı"}},
	field{name: fReceivesProxyPay, label: "Vekalet Ücreti", typ: boolField, synonyms: []string{"Vekalet Ücreti Alıyor", "Vekalet Ücreti Alır"}},
	field{name: fHasDelegatedAuthority, label: "Yetki Devri", typ: boolField, synonyms: []string{"Yetki Devri Var", "Yetki Devri Yapıldı"}},
	assigneeField,
	startDateField,
)

var personnelSchema = newSchema(
	field{name: fFirstName, label: "Ad", synonyms: []string{"Adı", "İsim", "İsmi"}},
	field{name: fLastName, label: "Soyad", synonyms: []string{"Soyadı", "Soyisim", "Soyismi"}},
	field{name: fUnvan, label: "Unvan", synonyms: []string{"Unvanı", "Kadro Unvanı"}},
	field{name: fRegistryNumber, label: "Sicil No", synonyms: []string{"Sicil Numarası", "Sicil", "Personel Sicil No"}},
	field{name: fStatus, label: "Statü", synonyms: []string{"Statüsü", "Durum", "İstihdam Türü", "Kadro Statüsü"}},
	field{name: fEmail, label: "E-posta", synonyms: []string{"Eposta", "E-mail", "Email", "Mail"}},
	field{name: fPhone, label: "Telefon", synonyms: []string{"Tel", "Telefon No", "Cep Telefonu"}},
	field{name: fPhotoURL, label: "Fotoğraf", synonyms: []string{"Fotoğraf URL", "Foto", "Fotoğraf Adresi"}},
	field{name: fDateOfBirth, label: "Doğum Tarihi", typ: dateField, synonyms: []string{"D.Tarihi", "Doğum Tarih"}},
)
