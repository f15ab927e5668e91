package report

import (
	"github.com/retailscope/retailscope/internal/model"
)

// Colors shared by the charts
const (
	blue600     = "rgba(37, 99, 235, 1)"
	blue600Soft = "rgba(37, 99, 235, 0.7)"
	blue600Fill = "rgba(37, 99, 235, 0.1)"
	blue500     = "rgba(59, 130, 246, 1)"
	blue500Soft = "rgba(59, 130, 246, 0.7)"
	blue300     = "rgba(147, 197, 253, 1)"
	blue300Soft = "rgba(147, 197, 253, 0.7)"
)

// Section anchors
const (
	sectionMkt  = "market"
	sectionCons = "consumer"
	sectionApps = "applications"
	sectionLead = "leaders"
	sectionRefs = "references"
)

// Slug identifies the report in exports and traces
const Slug = "ai-in-indian-retail"

func cite(refs ...int) model.Citations {
	return model.Citations{model.Cite(refs...)}
}

func cites(cs ...model.Citation) model.Citations {
	return model.Citations(cs)
}

// IndianRetail returns the "AI in Indian Retail" report. Each call returns a
// fresh copy so callers cannot alter another caller's content.
func IndianRetail() *model.Report {
	return &model.Report{
		Slug:          Slug,
		Brand:         "AI in Indian Retail",
		DocumentTitle: "The Rise of AI in Indian Retail: An Interactive Report",
		Nav: []model.NavLink{
			{Label: "Market Opportunity", Target: sectionMkt},
			{Label: "The Consumer", Target: sectionCons},
			{Label: "AI in Action", Target: sectionApps},
			{Label: "Industry Leaders", Target: sectionLead},
			{Label: "References", Target: sectionRefs},
		},

		Hero: model.Hero{
			Headline: "India's Retail Revolution is AI-Powered",
			Lead:     "A new era of retail is dawning in India, driven by a powerful synergy between ambitious businesses and a digitally-savvy consumer base. Explore the data behind this transformation.",
			Stats: []model.StatCard{
				{Value: "33.7%", Caption: "Projected CAGR (2025-2030)", Cite: cite(1, 2)},
				{Value: "82%", Caption: "of Consumers Open to AI", Cite: cite(6)},
				{Value: "59%", Caption: "of Large Enterprises Use AI", Cite: cite(5)},
			},
		},

		Market: model.MarketSection{
			SectionIntro: model.SectionIntro{
				ID:      sectionMkt,
				Heading: "The Market Opportunity",
				Summary: "This section explores the significant financial growth and widespread business adoption fueling the AI revolution in Indian retail. The data shows a market not just growing, but accelerating, with businesses of all sizes investing in AI to gain a competitive edge.",
			},
			Growth: model.Figure{
				Title: "AI in Retail Market Growth (USD Millions)",
				Cite:  cite(1, 2),
				Chart: model.ChartSpec{
					Canvas: "marketGrowthChart",
					Type:   model.ChartLine,
					Labels: []string{"2024", "2025", "2026", "2027", "2028", "2029", "2030"},
					Datasets: []model.Dataset{{
						Label:           "Market Revenue (USD M)",
						Data:            []float64{584.7, 781.7, 1045.1, 1397.3, 1868.2, 2500.0, 3474.6},
						BorderColor:     model.Colors{blue600},
						BackgroundColor: model.Colors{blue600Fill},
						Fill:            true,
						Tension:         0.4,
					}},
					Axes: true,
				},
			},
			Components: model.Figure{
				Title: "Dominant AI Components & Technologies",
				Cite:  cites(model.Cite(1, 2), model.Cite(14)),
				Chart: model.ChartSpec{
					Canvas: "componentsChart",
					Type:   model.ChartDoughnut,
					Labels: []string{"Solution (88.52%)", "Services (11.48%)"},
					Datasets: []model.Dataset{{
						Label:           "Market Share (%)",
						Data:            []float64{88.52, 11.48},
						BackgroundColor: model.Colors{blue600Soft, blue500Soft},
						BorderColor:     model.Colors{blue600, blue500},
						BorderWidth:     1,
					}},
					PercentTooltip: true,
				},
				Note: model.Text{{
					Text: "Machine Learning leads with a 40.21% revenue share (2024), foundational for current AI applications. Generative AI is projected for significant growth (27.6% CAGR to 2030), signaling its importance in content creation and advanced personalization. Omnichannel strategies held a dominant 45.7% of the AI in Retail market share in 2024, emphasizing unified data flows.",
				}},
			},
		},

		Consumer: model.ConsumerSection{
			SectionIntro: model.SectionIntro{
				ID:      sectionCons,
				Heading: "Understanding the Indian Consumer",
				Summary: "Successful AI integration hinges on understanding the end-user. This section delves into the digital landscape of India's consumers, their evolving preferences, and their unique perspective on AI—a blend of high enthusiasm and critical concerns about privacy.",
			},
			Stats: []model.StatCard{
				{Value: "974M", Caption: "Internet Users", Cite: cite(15)},
				{Value: "85.5%", Caption: "Household Smartphone Penetration", Cite: cite(17)},
				{Value: "84%", Caption: "UPI Share of Digital Payments", Cite: cite(5)},
				{Value: "₹9", Caption: "Avg. Cost per GB of Data", Cite: cite(15, 16)},
			},
			Sentiment: model.Figure{
				Title: "Consumer Sentiment on AI",
				Cite:  cites(model.Cite(6), model.Cite(7)),
				Chart: model.ChartSpec{
					Canvas: "consumerSentimentChart",
					Type:   model.ChartBar,
					Labels: []string{"Open to AI for Purchase Decisions", "Trust AI for Tailored Deals", "Open to Chatbots"},
					Datasets: []model.Dataset{
						{
							Label:           "India (%)",
							Data:            []float64{82, 48, 82},
							BackgroundColor: model.Colors{blue600Soft},
							BorderColor:     model.Colors{blue600},
							BorderWidth:     1,
						},
						{
							Label:           "Global Avg (%)",
							Data:            []float64{58, 23, 58},
							BackgroundColor: model.Colors{blue300Soft},
							BorderColor:     model.Colors{blue300},
							BorderWidth:     1,
						},
					},
					Axes: true,
				},
				Note: model.Text{
					{Text: "Indian consumers show significantly higher trust and openness to AI in their shopping journey compared to global averages, yet data privacy remains a paramount concern for 82%", Cite: cite(7)},
					{Text: " of them."},
				},
			},
		},

		Applications: model.ApplicationsSection{
			SectionIntro: model.SectionIntro{
				ID:      sectionApps,
				Heading: "AI in Action: Transforming Retail",
				Summary: "AI is not a future concept; it's a present-day reality revolutionizing every facet of retail. This interactive section showcases how AI is being applied to create more personal customer experiences and drive unprecedented operational efficiency. Click through the tabs to explore key use cases.",
			},
			Tabs: []model.Tab{
				{
					Key:         "personalization",
					Label:       "Personalization",
					Heading:     "Hyper-Personalized Experiences",
					HeadingCite: cites(model.Cite(2), model.Cite(3, 4), model.Cite(8), model.Cite(9)),
					Summary:     "AI algorithms analyze browsing history, purchase behavior, and preferences to deliver tailored product recommendations and marketing. This moves beyond simple suggestions to create a unique shopping journey for every customer.",
					Points: []model.Point{
						{Label: "Taste-Mapping", Text: "Sophisticated systems understand individual style, not just what's popular.", Cite: cite(20)},
						{Label: "Generative AI Marketing", Text: "42% of retailers use GenAI for personalized ads and content.", Cite: cite(9)},
						{Label: "Key Outcome", Text: "44% of MSMEs rely on AI personalization to enhance customer experience and loyalty.", Cite: cite(3, 4)},
					},
				},
				{
					Key:         "operations",
					Label:       "Operations",
					Heading:     "Unprecedented Operational Efficiency",
					HeadingCite: cites(model.Cite(2), model.Cite(5), model.Cite(8), model.Cite(9)),
					Summary:     "Behind the scenes, AI is optimizing the backbone of retail. From predicting demand to automating warehouses, AI drives down costs and increases resilience, directly impacting the bottom line.",
					Points: []model.Point{
						{Label: "Demand Forecasting", Text: ">90% forecast accuracy, reducing stockouts by 40% and excess inventory by 25%.", Cite: cite(5)},
						{Label: "Supply Chain Optimization", Text: "AI predicts disruptions and optimizes delivery routes, reducing costs.", Cite: cites(model.Cite(2), model.Cite(8), model.Cite(9))},
						{Label: "Warehouse Automation", Text: "Up to 99.9% order accuracy and 20% reduction in operational costs with robotics.", Cite: cite(5)},
					},
				},
				{
					Key:         "service",
					Label:       "Customer Service",
					Heading:     "Enhanced Customer Service",
					HeadingCite: cites(model.Cite(2), model.Cite(8), model.Cite(9)),
					Summary:     "AI-powered chatbots and virtual assistants provide 24/7 support, resolving queries instantly and freeing up human agents for more complex issues. This ensures a responsive and seamless customer support experience.",
					Points: []model.Point{
						{Label: "24/7 Support", Text: "AI chatbots handle common queries anytime, day or night.", Cite: cites(model.Cite(2), model.Cite(8), model.Cite(9))},
						{Label: "Proactive Logistics", Text: "AI resolves 70-80% of delivery issues automatically before they become problems.", Cite: cite(20)},
						{Label: "Consumer Comfort", Text: "82% of Indian consumers are open to chatbots assisting with their queries.", Cite: cite(6)},
					},
				},
			},
		},

		Leaders: model.LeadersSection{
			SectionIntro: model.SectionIntro{
				ID:      sectionLead,
				Heading: "Industry Leaders: AI in Practice",
				Summary: "Theory meets practice. This section highlights how leading Indian companies are implementing tailored AI solutions to solve real-world challenges and create distinct competitive advantages. Click on each company to see how they are innovating.",
			},
			Entries: []model.AccordionEntry{
				{
					Company: "Myntra",
					Sector:  "Fashion Retail",
					Cite:    cite(20),
					Body:    `Myntra uses ML to power every frame of its app, from personalized homepages to "taste-mapping" algorithms that understand individual fashion sense. Its conversational AI stylist acts as a virtual shopping assistant, providing outfit ideas for specific occasions.`,
				},
				{
					Company: "Shipway",
					Sector:  "Logistics",
					Cite:    cite(20),
					Body:    "Shipway leverages AI to optimize the entire delivery process. It maps courier performance by success rate and speed to choose the best option for each delivery. Its AI-powered chatbots proactively resolve 70-80% of delivery issues (like incorrect addresses) before a package is returned to origin.",
				},
				{
					Company: "Panasonic",
					Sector:  "Consumer Durables",
					Cite:    cite(20),
					Body:    "Panasonic uses AI to forecast demand by analyzing factors like weather and regional events, ensuring optimal inventory levels for products like air conditioners. It also uses AI to identify high-intent users on its website and trigger proactive support to convert interest into sales.",
				},
				{
					Company: "Shiprocket",
					Sector:  "eCommerce Enablement",
					Cite:    cite(5),
					Body:    `Shiprocket developed Shunya.ai, India's first sovereign AI engine for MSMEs. Trained on Indian commerce data and supporting 9 regional languages, it's a "Made for Bharat" solution that ensures data sovereignty by being hosted on local infrastructure. It automates cataloguing, marketing, and fulfillment for small businesses.`,
				},
			},
		},

		References: model.ReferencesSection{
			SectionIntro: model.SectionIntro{ID: sectionRefs, Heading: "References"},
			Items:        references(),
		},

		Footer: "© 2024 Interactive Report on AI in Indian Retail. All data sourced from the provided report.",
	}
}

func references() []model.Reference {
	texts := []string{
		`"India Artificial Intelligence in Retail Market Size, Share & Trends Analysis Report By Component (Solution, Services), By Technology (Machine Learning, Natural Language Processing, Computer Vision, Others), By Application, By Deployment, By Organization Size, By Region, And Segment Forecasts, 2024 - 2030." Grand View Research, April 2024.`,
		`"India Artificial Intelligence in Retail Market Size and Forecast (2024-2030)." TechSci Research, 2024.`,
		`"Zoho Survey on Indian MSMEs: AI Adoption and Omnichannel Strategies." Zoho, 2024.`,
		`"Zoho survey: 60% of Indian MSMEs to adopt AI/ML by 2030." The Economic Times, May 2024.`,
		`"Shiprocket-KPMG Report: AI in Indian Retail." Shiprocket, KPMG, 2024.`,
		`"EY Survey: Indian Consumer Sentiment on AI." EY, 2024.`,
		`"PwC India Survey: Consumer Trust and Privacy in Digital India." PwC India, 2024.`,
		`"India Artificial Intelligence in Retail Market Size, Share, Trends, Opportunities and Forecasts (2023-2032)." Market Research Future, 2024.`,
		`"AI in Retail: The Future of Shopping." Shopify, 2024.`,
		`"India's AI Opportunity: A Trillion-Dollar Vision." NITI Aayog, 2024.`,
		`"India Retail Market Outlook 2026." Invest India, 2022.`,
		`"The Evolving Indian Consumer: Trends and Preferences." Deloitte, 2023.`,
		`"CBRE and Invest India Survey: Experiential Retail." CBRE, Invest India, 2023.`,
		`"Generative AI in Retail Market Analysis." Allied Market Research, 2024.`,
		`"Telecom Regulatory Authority of India (TRAI) Reports." TRAI, March 2024.`,
		`"Department of Telecommunications (DoT) Annual Reports." DoT, April 2024.`,
		`"National Family Health Survey (NFHS-5) 2019-21." Ministry of Health and Family Welfare, Government of India.`,
		`"India Smartphone Market Report." Counterpoint Research, 2021.`,
		`"India's Consumption Story: Rise of the Middle Class." CRISIL, 2024.`,
		`"AI in Indian Retail: Company Case Studies." Various industry reports and company statements, 2023-2024.`,
	}

	refs := make([]model.Reference, len(texts))
	for i, text := range texts {
		refs[i] = model.Reference{N: i + 1, Text: text}
	}
	return refs
}
