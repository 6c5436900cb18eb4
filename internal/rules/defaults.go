package rules

// Built-in tables used when no rule files are supplied. Order matters:
// more specific families/industries come first.

func DefaultTaxonomy() Taxonomy {
	return Taxonomy{Rules: []RoleRule{
		{Family: "Data/AI", Any: []string{
			"data scientist", "data engineer", "data analyst",
			"machine learning", "ml engineer", "ai engineer",
			"analytics", "business intelligence", "bi analyst",
		}},
		{Family: "Tech/Engineering", Any: []string{
			"software engineer", "engineer", "developer", "architect",
			"sre", "devops", "backend", "frontend", "full stack",
			"infrastructure", "security engineer", "cloud engineer",
		}},
		{Family: "Product/Design", Any: []string{
			"product manager", "product owner", "designer", "ux", "ui",
			"product designer", "design lead", "design manager",
		}},
		{Family: "Sales", Any: []string{
			"sales", "account executive", "business development",
			"bdr", "sdr", "sales rep", "account manager",
		}},
		{Family: "Marketing", Any: []string{
			"marketing", "growth", "content", "social media", "brand",
			"demand generation", "digital marketing",
		}},
		{Family: "Customer Success", Any: []string{
			"customer success", "customer support", "support engineer",
			"solutions engineer", "technical account manager",
		}},
		{Family: "Finance", Any: []string{
			"finance", "accounting", "controller", "accountant",
			"financial analyst", "fp&a",
		}},
		{Family: "HR/Talent", Any: []string{
			"recruiter", "talent", "human resources", "people ops",
			"people partner",
		}},
		{Family: "Operations/Strategy", Any: []string{
			"operations", "strategy", "program manager",
			"project manager", "business ops", "chief of staff",
		}},
		{Family: "Legal/Compliance", Any: []string{
			"legal", "counsel", "lawyer", "compliance", "paralegal",
			"attorney",
		}},
	}}
}

func DefaultLexicon() Lexicon {
	return Lexicon{Skills: []Skill{
		{Name: "Python"},
		{Name: "JavaScript"},
		{Name: "TypeScript"},
		{Name: "Java"},
		{Name: "C++"},
		{Name: "C#", Any: []string{"c#"}},
		{Name: "Go", Any: []string{"go", "golang"}},
		{Name: "Rust"},
		{Name: "Ruby"},
		{Name: "Scala"},
		{Name: "SQL"},
		{Name: "AWS"},
		{Name: "Azure"},
		{Name: "GCP", Any: []string{"gcp", "google cloud"}},
		{Name: "Kubernetes", Any: []string{"kubernetes", "k8s"}},
		{Name: "Docker"},
		{Name: "Terraform"},
		{Name: "Spark"},
		{Name: "Airflow"},
		{Name: "dbt"},
		{Name: "Snowflake"},
		{Name: "BigQuery"},
		{Name: "Redshift"},
		{Name: "Databricks"},
		{Name: "Kafka"},
		{Name: "TensorFlow"},
		{Name: "PyTorch"},
		{Name: "scikit-learn", Any: []string{"scikit-learn", "sklearn"}},
		{Name: "LLM", Any: []string{"llm", "large language model"}},
		{Name: "Tableau"},
		{Name: "Power BI", Any: []string{"power bi"}},
		{Name: "Looker"},
		{Name: "Salesforce"},
		{Name: "HubSpot"},
		{Name: "React"},
		{Name: "Angular"},
		{Name: "Vue"},
		{Name: "Django"},
		{Name: "Flask"},
		{Name: "FastAPI"},
		{Name: "Spring"},
		{Name: "Rails"},
		{Name: "Node.js", Any: []string{"node.js", "nodejs"}},
	}}
}

func DefaultIndustryRules() IndustryRules {
	return IndustryRules{Rules: []IndustryRule{
		{Tag: "Financial Services", Any: []string{
			"fintech", "banking", "finance", "investment", "trading",
			"payments", "credit",
		}},
		{Tag: "Healthcare", Any: []string{
			"health", "medical", "healthcare", "biotech", "pharma",
			"clinical", "patient",
		}},
		{Tag: "E-commerce/Retail", Any: []string{
			"ecommerce", "e-commerce", "retail", "marketplace",
			"shopping", "consumer",
		}},
		{Tag: "Media/Entertainment", Any: []string{
			"media", "entertainment", "gaming", "streaming",
			"publishing",
		}},
		{Tag: "Education", Any: []string{
			"education", "edtech", "learning", "university", "school",
			"training",
		}},
		{Tag: "Real Estate", Any: []string{
			"real estate", "proptech", "property", "housing",
			"construction",
		}},
		{Tag: "Transportation/Logistics", Any: []string{
			"transportation", "logistics", "delivery", "shipping",
			"supply chain", "mobility",
		}},
		{Tag: "Energy", Any: []string{
			"energy", "renewable", "solar", "climate",
			"sustainability", "utilities",
		}},
		{Tag: "Professional Services", Any: []string{
			"consulting", "legal", "accounting", "advisory",
			"professional services",
		}},
		// broadest bucket last so it never shadows the above
		{Tag: "Technology", Any: []string{
			"software", "saas", "cloud", "machine learning", "data",
			"tech", "platform", "api",
		}},
	}}
}
