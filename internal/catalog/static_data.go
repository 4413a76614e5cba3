package catalog

import "casper-stock-watcher/internal/models"

// staticRegions is the built-in delivery-area table, in showroom display order.
// Regenerate with the fetch-regions command when the showroom adds districts.
var staticRegions = []models.Region{
	{
		Name: "서울",
		Code: "B",
		SubRegions: []models.SubRegion{
			{Code: "B0", Name: "서울특별시"},
		},
	},
	{
		Name: "인천",
		Code: "D",
		SubRegions: []models.SubRegion{
			{Code: "D1", Name: "인천광역시"},
			{Code: "D2", Name: "강화군"},
			{Code: "D3", Name: "영종도(운서동)"},
		},
	},
	{
		Name: "경기",
		Code: "E",
		SubRegions: []models.SubRegion{
			{Code: "E0", Name: "가평군"},
			{Code: "E1", Name: "고양시"},
			{Code: "E2", Name: "과천시"},
			{Code: "E3", Name: "광명시"},
			{Code: "E4", Name: "광주시"},
			{Code: "E5", Name: "구리시"},
			{Code: "E6", Name: "군포시"},
			{Code: "E7", Name: "김포시"},
			{Code: "E8", Name: "남양주시"},
			{Code: "E9", Name: "동두천시"},
			{Code: "EA", Name: "부천시"},
			{Code: "EB", Name: "성남시"},
			{Code: "EC", Name: "수원시"},
			{Code: "ED", Name: "시흥시"},
			{Code: "EE", Name: "안산시"},
			{Code: "EF", Name: "안성시"},
			{Code: "EG", Name: "안양시"},
			{Code: "EH", Name: "양주시"},
			{Code: "EI", Name: "양평군"},
			{Code: "EJ", Name: "여주시"},
			{Code: "EK", Name: "연천군"},
			{Code: "EL", Name: "오산시"},
			{Code: "EM", Name: "용인시"},
			{Code: "EN", Name: "의왕시"},
			{Code: "EP", Name: "의정부시"},
			{Code: "EQ", Name: "이천시"},
			{Code: "ER", Name: "파주시"},
			{Code: "ES", Name: "평택시"},
			{Code: "ET", Name: "포천시"},
			{Code: "EU", Name: "하남시"},
			{Code: "EV", Name: "화성시"},
		},
	},
	{
		Name: "강원",
		Code: "F",
		SubRegions: []models.SubRegion{
			{Code: "F0", Name: "강릉시"},
			{Code: "F1", Name: "고성군"},
			{Code: "F2", Name: "동해시"},
			{Code: "F3", Name: "삼척시"},
			{Code: "F4", Name: "속초시"},
			{Code: "F5", Name: "양구군"},
			{Code: "F6", Name: "양양군"},
			{Code: "F7", Name: "영월군"},
			{Code: "F8", Name: "원주시"},
			{Code: "F9", Name: "인제군"},
			{Code: "FA", Name: "정선군"},
			{Code: "FB", Name: "철원군"},
			{Code: "FC", Name: "춘천시"},
			{Code: "FD", Name: "태백시"},
			{Code: "FE", Name: "평창군"},
			{Code: "FF", Name: "홍천군"},
			{Code: "FG", Name: "화천군"},
			{Code: "FH", Name: "횡성군"},
		},
	},
	{
		Name: "세종",
		Code: "W",
		SubRegions: []models.SubRegion{
			{Code: "I9", Name: "세종특별자치시"},
		},
	},
	{
		Name: "충남",
		Code: "I",
		SubRegions: []models.SubRegion{
			{Code: "I0", Name: "공주시"},
			{Code: "I1", Name: "금산군"},
			{Code: "I2", Name: "논산시"},
			{Code: "I3", Name: "당진시"},
			{Code: "I4", Name: "보령시"},
			{Code: "I5", Name: "부여군"},
			{Code: "I6", Name: "서산시"},
			{Code: "I7", Name: "서천군"},
			{Code: "I8", Name: "아산시"},
			{Code: "I9", Name: "세종특별자치시"},
			{Code: "IA", Name: "예산군"},
			{Code: "IB", Name: "천안시"},
			{Code: "IC", Name: "청양군"},
			{Code: "ID", Name: "태안군"},
			{Code: "IE", Name: "홍성군"},
			{Code: "IF", Name: "계룡시"},
		},
	},
	{
		Name: "대전",
		Code: "H",
		SubRegions: []models.SubRegion{
			{Code: "H0", Name: "대전광역시"},
		},
	},
	{
		Name: "충북",
		Code: "G",
		SubRegions: []models.SubRegion{
			{Code: "G0", Name: "괴산군"},
			{Code: "G1", Name: "단양군"},
			{Code: "G2", Name: "보은군"},
			{Code: "G3", Name: "영동군"},
			{Code: "G4", Name: "옥천군"},
			{Code: "G5", Name: "음성군"},
			{Code: "G6", Name: "제천시"},
			{Code: "G7", Name: "진천군"},
			{Code: "G9", Name: "청주시"},
			{Code: "GA", Name: "충주시"},
			{Code: "GB", Name: "증평군"},
		},
	},
	{
		Name: "대구",
		Code: "M",
		SubRegions: []models.SubRegion{
			{Code: "M0", Name: "대구광역시"},
			{Code: "M1", Name: "군위군"},
		},
	},
	{
		Name: "경북",
		Code: "N",
		SubRegions: []models.SubRegion{
			{Code: "N0", Name: "경산시"},
			{Code: "N1", Name: "경주시"},
			{Code: "N2", Name: "고령군"},
			{Code: "N3", Name: "구미시"},
			{Code: "N5", Name: "김천시"},
			{Code: "N6", Name: "문경시"},
			{Code: "N7", Name: "봉화군"},
			{Code: "N8", Name: "상주시"},
			{Code: "N9", Name: "성주군"},
			{Code: "NA", Name: "안동시"},
			{Code: "NB", Name: "영덕군"},
			{Code: "NC", Name: "영양군"},
			{Code: "ND", Name: "영주시"},
			{Code: "NE", Name: "영천시"},
			{Code: "NF", Name: "예천군"},
			{Code: "NG", Name: "울진군"},
			{Code: "NH", Name: "의성군"},
			{Code: "NI", Name: "청도군"},
			{Code: "NJ", Name: "청송군"},
			{Code: "NK", Name: "칠곡군"},
			{Code: "NL", Name: "포항시"},
		},
	},
	{
		Name: "부산",
		Code: "P",
		SubRegions: []models.SubRegion{
			{Code: "P0", Name: "부산광역시"},
		},
	},
	{
		Name: "경남",
		Code: "S",
		SubRegions: []models.SubRegion{
			{Code: "S0", Name: "거제시"},
			{Code: "S1", Name: "거창군"},
			{Code: "S2", Name: "고성군"},
			{Code: "S3", Name: "김해시"},
			{Code: "S4", Name: "남해군"},
			{Code: "S5", Name: "창원시(마산)"},
			{Code: "S6", Name: "밀양시"},
			{Code: "S7", Name: "사천시"},
			{Code: "S8", Name: "산청군"},
			{Code: "S9", Name: "양산시"},
			{Code: "SA", Name: "의령군"},
			{Code: "SB", Name: "진주시"},
			{Code: "SC", Name: "창원시(진해)"},
			{Code: "SD", Name: "창녕군"},
			{Code: "SE", Name: "창원시"},
			{Code: "SF", Name: "통영시"},
			{Code: "SG", Name: "하동군"},
			{Code: "SH", Name: "함안군"},
			{Code: "SI", Name: "함양군"},
			{Code: "SJ", Name: "합천군"},
		},
	},
	{
		Name: "울산",
		Code: "U",
		SubRegions: []models.SubRegion{
			{Code: "U0", Name: "울산광역시"},
			{Code: "U1", Name: "울주군"},
		},
	},
	{
		Name: "전북",
		Code: "J",
		SubRegions: []models.SubRegion{
			{Code: "J0", Name: "고창군"},
			{Code: "J1", Name: "군산시"},
			{Code: "J2", Name: "김제시"},
			{Code: "J3", Name: "남원시"},
			{Code: "J4", Name: "무주군"},
			{Code: "J5", Name: "부안군"},
			{Code: "J6", Name: "순창군"},
			{Code: "J7", Name: "완주군"},
			{Code: "J8", Name: "익산시"},
			{Code: "J9", Name: "임실군"},
			{Code: "JA", Name: "장수군"},
			{Code: "JB", Name: "전주시"},
			{Code: "JC", Name: "정읍시"},
			{Code: "JD", Name: "진안군"},
		},
	},
	{
		Name: "전남",
		Code: "L",
		SubRegions: []models.SubRegion{
			{Code: "L0", Name: "강진군"},
			{Code: "L1", Name: "고흥군"},
			{Code: "L2", Name: "곡성군"},
			{Code: "L3", Name: "광양시"},
			{Code: "L4", Name: "구례군"},
			{Code: "L5", Name: "나주시"},
			{Code: "L6", Name: "담양군"},
			{Code: "L7", Name: "목포시"},
			{Code: "L8", Name: "무안군"},
			{Code: "L9", Name: "보성군"},
			{Code: "LA", Name: "순천시"},
			{Code: "LB", Name: "여수시"},
			{Code: "LC", Name: "영광군"},
			{Code: "LD", Name: "영암군"},
			{Code: "LE", Name: "완도군"},
			{Code: "LF", Name: "장성군"},
			{Code: "LG", Name: "장흥군"},
			{Code: "LH", Name: "진도군"},
			{Code: "LI", Name: "함평군"},
			{Code: "LJ", Name: "해남군"},
			{Code: "LK", Name: "화순군"},
		},
	},
	{
		Name: "광주",
		Code: "K",
		SubRegions: []models.SubRegion{
			{Code: "K0", Name: "광주광역시"},
		},
	},
	{
		Name: "제주",
		Code: "T",
		SubRegions: []models.SubRegion{
			{Code: "T0", Name: "제주항"},
			{Code: "T1", Name: "제주시"},
			{Code: "T2", Name: "서귀포시"},
		},
	},
}
