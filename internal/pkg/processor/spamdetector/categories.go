package spamdetector

// Risk category identifiers. The set is fixed at compile time.
type RiskCategory string

const (
	CategoryAdultContent      RiskCategory = "adult_content"
	CategoryPromotion         RiskCategory = "promotion"
	CategoryMalicious         RiskCategory = "malicious"
	CategoryGambling          RiskCategory = "gambling"
	CategoryScam              RiskCategory = "scam"
	CategoryCommercial        RiskCategory = "commercial"
	CategorySuspiciousContent RiskCategory = "suspicious_content"
	CategoryAdultSlang        RiskCategory = "adult_slang"
)

// Static per-category configuration: keyword set, known domains, and the
// base risk score (3-10). Immutable after process start.
type categoryConfig struct {
	keywords  []string
	domains   []string
	riskScore int
}

var riskCategories = map[RiskCategory]categoryConfig{
	CategoryAdultContent: {
		keywords:  []string{"성인", "19금", "l9금", "adult", "xxx", "porn", "야동", "성인방송", "19방", "성인사이트"},
		domains:   []string{"xvideos.com", "pornhub.com", "xnxx.com"},
		riskScore: 10,
	},
	CategoryPromotion: {
		keywords:  []string{"내 채널", "구독", "좋아요", "팔로우", "구독하고", "좋아요하고", "내채널", "제채널", "체널", "기억해주세요", "꼭 기억", "잊지 말아"},
		domains:   []string{"youtube.com", "youtu.be"},
		riskScore: 5,
	},
	CategoryMalicious: {
		keywords:  []string{"클릭", "링크", "바로가기", "접속", "방문"},
		domains:   []string{"bit.ly", "tinyurl.com", "short.link", "ow.ly", "tiny.cc"},
		riskScore: 8,
	},
	CategoryGambling: {
		keywords:  []string{"카지노", "도박", "casino", "bet", "배팅", "토토", "슬롯"},
		domains:   []string{"casino.com", "bet365.com"},
		riskScore: 9,
	},
	CategoryScam: {
		keywords:  []string{"무료", "이벤트", "당첨", "공짜", "돈벌기", "수익", "재택", "부업"},
		domains:   []string{},
		riskScore: 7,
	},
	CategoryCommercial: {
		keywords:  []string{"판매", "구매", "할인", "특가", "쇼핑", "상품", "주문"},
		domains:   []string{"shopping.naver.com", "coupang.com", "gmarket.co.kr"},
		riskScore: 4,
	},
	CategorySuspiciousContent: {
		keywords:  []string{"분노", "평화", "마음속", "진정한", "부드럽게", "다스리", "평화로운", "삶"},
		domains:   []string{},
		riskScore: 3,
	},
	CategoryAdultSlang: {
		keywords:  []string{"상남자", "선물ㄱㄱ", "핵불닭맛", "걸..ㄹ", "난리났던", "진심", "ㄹㅇ", "갤에서"},
		domains:   []string{},
		riskScore: 8,
	},
}

// Display-name patterns typical of promo/adult spam accounts. Each match
// adds a fixed +2 to the nickname suspicion score.
var suspiciousNicknamePatterns = []string{
	`채널`,
	`체널`, // common misspelling
	`구독`,
	`tv`,
	`TV`, // deliberate duplicate, tv nicknames score double
	`방송`,
	`유튜브`,
	`youtube`,
	`\.com`,
	`\.kr`,
	`www\.`,
	`http`,
	`19금`,
	`l9금`, // digit swapped for letter l
	`성인`,
	`adult`,
	`DOPAMIN`,
	`HIGH`,
	`PAIMIUM`,
	`NEW`,
	`레드`,
	`다크`,
	`_.*_`,    // two or more underscores
	`-.*-.*-`, // three or more hyphens
	`클릭`,
	`ON팬`,
	`사건`,
	`l9.*ON`,
}
