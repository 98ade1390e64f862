package merchant

import "github.com/marchwood/taxledger/internal/model"

// Seed returns the built-in UK merchant table. The list is loaded into
// storage on first run; users extend it through the add-custom-merchant path
// but the built-in records are never mutated automatically.
func Seed() []model.MerchantRecord {
	return []model.MerchantRecord{
		// Supermarkets
		expense("TESCO", "Groceries", "Supermarket", 25, "TESCO STORES", "TESCO EXPRESS", "TESCO EXTRA"),
		expense("SAINSBURYS", "Groceries", "Supermarket", 25, "SAINSBURY'S", "SAINSBURYS S/MKTS", "SACAT"),
		expense("ASDA", "Groceries", "Supermarket", 25, "ASDA SUPERSTORE", "ASDA GROCERIES"),
		expense("MORRISONS", "Groceries", "Supermarket", 25, "WM MORRISONS", "MORRISONS DAILY"),
		expense("ALDI", "Groceries", "Supermarket", 25),
		expense("LIDL", "Groceries", "Supermarket", 25, "LIDL GB"),
		expense("WAITROSE", "Groceries", "Supermarket", 25, "WAITROSE & PARTNERS"),
		expense("ICELAND", "Groceries", "Supermarket", 20, "ICELAND FOODS"),
		expense("CO-OP", "Groceries", "Supermarket", 15, "COOP", "CO-OPERATIVE FOOD", "COOP GROUP"),
		expense("MARKS & SPENCER", "Groceries", "Supermarket", 20, "M&S", "MARKS AND SPENCER", "M&S SIMPLY FOOD"),

		// Subscriptions and digital services
		expense("NETFLIX", "Subscriptions", "Streaming", 25, "NETFLIX.COM"),
		expense("SPOTIFY", "Subscriptions", "Streaming", 25, "SPOTIFY UK"),
		expense("DISNEY PLUS", "Subscriptions", "Streaming", 25, "DISNEYPLUS", "DISNEY+"),
		expense("AMAZON PRIME", "Subscriptions", "Streaming", 20, "PRIME VIDEO", "AMZNPRIME"),
		expense("AUDIBLE", "Subscriptions", "Streaming", 20, "AUDIBLE UK"),
		expense("YOUTUBE PREMIUM", "Subscriptions", "Streaming", 20, "YOUTUBEPREMIUM", "GOOGLE YOUTUBE"),
		expense("APPLE", "Subscriptions", "Technology", 15, "APPLE.COM/BILL", "ITUNES.COM"),
		expense("MICROSOFT", "Software", "Technology", 15, "MSFT", "MICROSOFT 365"),
		expense("ADOBE", "Software", "Technology", 20, "ADOBE SYSTEMS"),
		expense("GITHUB", "Software", "Technology", 20, "GITHUB.COM"),
		expense("DROPBOX", "Software", "Technology", 20),

		// Online retail
		expense("AMAZON", "Shopping", "Online retail", 15, "AMZN", "AMAZON.CO.UK", "AMZN MKTP"),
		expense("EBAY", "Shopping", "Online retail", 15, "EBAY.CO.UK", "EBAY O*"),
		expense("ASOS", "Clothing", "Online retail", 20, "ASOS.COM"),
		expense("ARGOS", "Shopping", "Retail", 20),
		expense("JOHN LEWIS", "Shopping", "Retail", 20, "JOHNLEWIS.COM"),
		expense("CURRYS", "Electronics", "Retail", 20, "CURRYS PC WORLD", "CURRYS ONLINE"),
		expense("PRIMARK", "Clothing", "Retail", 20),
		expense("NEXT", "Clothing", "Retail", 15, "NEXT RETAIL", "NEXT DIRECTORY"),
		expense("SPORTS DIRECT", "Clothing", "Retail", 20, "SPORTSDIRECT.COM"),
		expense("JD SPORTS", "Clothing", "Retail", 20, "JD SPORTS FASHION"),
		expense("IKEA", "Household", "Retail", 20),
		expense("DUNELM", "Household", "Retail", 20),
		expense("B&Q", "Home maintenance", "DIY", 20, "B AND Q", "B&Q WAREHOUSE"),
		expense("WICKES", "Home maintenance", "DIY", 20),
		expense("SCREWFIX", "Home maintenance", "DIY", 25, "SCREWFIX DIRECT"),
		expense("TOOLSTATION", "Home maintenance", "DIY", 25),
		expense("WH SMITH", "Shopping", "Retail", 15, "WHSMITH"),
		expense("WATERSTONES", "Shopping", "Retail", 20),
		expense("PETS AT HOME", "Pets", "Retail", 25),

		// Fuel and transport
		expense("SHELL", "Fuel", "Fuel station", 20, "SHELL UK"),
		expense("BP", "Fuel", "Fuel station", 15, "BP FUEL", "BP CONNECT"),
		expense("ESSO", "Fuel", "Fuel station", 20, "ESSO PETROLEUM"),
		expense("TEXACO", "Fuel", "Fuel station", 20),
		expense("TFL", "Travel", "Public transport", 25, "TFL TRAVEL", "TFL.GOV.UK", "LONDON UNDERGROUND"),
		expense("TRAINLINE", "Travel", "Public transport", 25, "THETRAINLINE", "TRAINLINE.COM"),
		expense("NATIONAL RAIL", "Travel", "Public transport", 20, "NATIONALRAIL"),
		expense("UBER", "Travel", "Taxi", 20, "UBER TRIP", "UBER *TRIP"),
		expense("STAGECOACH", "Travel", "Public transport", 20),
		expense("DVLA", "Motoring", "Government", 25, "DVLA VEHICLE TAX"),

		// Utilities, telecoms, insurance
		expense("BRITISH GAS", "Utilities", "Energy", 25, "BRITISHGAS"),
		expense("EDF ENERGY", "Utilities", "Energy", 25, "EDF"),
		expense("E.ON", "Utilities", "Energy", 25, "EON NEXT", "E.ON NEXT"),
		expense("OCTOPUS ENERGY", "Utilities", "Energy", 25),
		expense("THAMES WATER", "Utilities", "Water", 25),
		expense("SEVERN TRENT", "Utilities", "Water", 25, "SEVERN TRENT WATER"),
		expense("BT", "Utilities", "Telecoms", 15, "BT GROUP", "BT BROADBAND"),
		expense("SKY", "Utilities", "Telecoms", 15, "SKY DIGITAL", "SKY MOBILE"),
		expense("VIRGIN MEDIA", "Utilities", "Telecoms", 25),
		expense("VODAFONE", "Utilities", "Telecoms", 25),
		expense("O2", "Utilities", "Telecoms", 15, "O2 UK", "TELEFONICA"),
		expense("EE", "Utilities", "Telecoms", 10, "EE LIMITED", "EE & T-MOBILE"),
		expense("THREE", "Utilities", "Telecoms", 15, "THREE.CO.UK", "HUTCHISON 3G"),
		expense("ADMIRAL", "Insurance", "Insurance", 20, "ADMIRAL INSURANCE"),
		expense("AVIVA", "Insurance", "Insurance", 20),
		expense("DIRECT LINE", "Insurance", "Insurance", 25, "DIRECTLINE"),

		// Food and drink
		expense("GREGGS", "Eating out", "Food outlet", 25),
		expense("COSTA", "Eating out", "Coffee shop", 25, "COSTA COFFEE"),
		expense("STARBUCKS", "Eating out", "Coffee shop", 25),
		expense("CAFFE NERO", "Eating out", "Coffee shop", 25, "CAFFE NERO UK"),
		expense("PRET A MANGER", "Eating out", "Food outlet", 25, "PRET"),
		expense("MCDONALDS", "Eating out", "Fast food", 25, "MCDONALD'S", "MCD"),
		expense("KFC", "Eating out", "Fast food", 25),
		expense("NANDOS", "Eating out", "Restaurant", 25, "NANDO'S"),
		expense("DOMINOS", "Eating out", "Fast food", 25, "DOMINO'S PIZZA"),
		expense("DELIVEROO", "Eating out", "Food delivery", 25, "DELIVEROO.CO.UK"),
		expense("JUST EAT", "Eating out", "Food delivery", 25, "JUSTEAT", "JUST-EAT.CO.UK"),
		expense("UBER EATS", "Eating out", "Food delivery", 25, "UBER* EATS", "UBEREATS"),

		// Health and fitness
		expense("BOOTS", "Health", "Pharmacy", 20, "BOOTS THE CHEMIST"),
		expense("SUPERDRUG", "Health", "Pharmacy", 25),
		expense("HOLLAND & BARRETT", "Health", "Pharmacy", 25, "HOLLAND AND BARRETT"),
		expense("SPECSAVERS", "Health", "Optician", 25),
		expense("PUREGYM", "Health", "Gym", 25, "PURE GYM"),
		expense("THE GYM GROUP", "Health", "Gym", 25, "THE GYM"),
		expense("DAVID LLOYD", "Health", "Gym", 25, "DAVID LLOYD CLUBS"),

		// Travel and accommodation
		expense("EASYJET", "Travel", "Airline", 25, "EASYJET AIRLINE"),
		expense("RYANAIR", "Travel", "Airline", 25),
		expense("BRITISH AIRWAYS", "Travel", "Airline", 25, "BA.COM"),
		expense("PREMIER INN", "Travel", "Hotel", 25, "PREMIERINN"),
		expense("TRAVELODGE", "Travel", "Hotel", 25),
		expense("AIRBNB", "Travel", "Accommodation", 25, "AIRBNB.CO.UK", "AIRBNB * HM"),
		expense("BOOKING.COM", "Travel", "Accommodation", 25, "BOOKING COM"),

		// Post and services
		expense("ROYAL MAIL", "Postage", "Postal", 25, "ROYALMAIL"),
		expense("POST OFFICE", "Postage", "Postal", 20, "POST OFFICE COUNTERS"),
		expense("PAYPAL", "Shopping", "Payments", 5, "PAYPAL PAYMENT", "PP*"),
		expense("WISE", "Transfers", "Payments", 10, "TRANSFERWISE", "WISE PAYMENTS"),

		// Government payers (income)
		income("DWP", "Benefits", "Government", 30, "DWP UC", "DEPT WORK PENSIONS", "DWP PIP"),
		income("HMRC", "Tax refund", "Government", 25, "HM REVENUE", "HMRC NDDS", "HMRC SA"),
		income("UNIVERSAL CREDIT", "Benefits", "Government", 30, "DWP UNIVERSAL CREDIT"),
		income("CHILD BENEFIT", "Benefits", "Government", 30, "HMRC CHILD BENEFIT", "CHB"),
		income("STATE PENSION", "Pension", "Government", 30, "DWP STATE PENSION"),
		income("STUDENT LOANS COMPANY", "Student finance", "Government", 30, "SLC RECEIPTS"),
	}
}

// expense builds a personal expense merchant record.
func expense(name, category, industry string, boost int, aliases ...string) model.MerchantRecord {
	return model.MerchantRecord{
		CanonicalName:       name,
		Aliases:             aliases,
		DefaultCategory:     category,
		DefaultType:         model.TypeExpense,
		IsPersonalByDefault: true,
		ConfidenceBoost:     boost,
		Industry:            industry,
	}
}

// income builds an income merchant record (benefit and refund payers).
func income(name, category, industry string, boost int, aliases ...string) model.MerchantRecord {
	return model.MerchantRecord{
		CanonicalName:       name,
		Aliases:             aliases,
		DefaultCategory:     category,
		DefaultType:         model.TypeIncome,
		IsPersonalByDefault: true,
		ConfidenceBoost:     boost,
		Industry:            industry,
	}
}
